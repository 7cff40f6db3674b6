// Package permission maps abstract permission names requested by the model
// to Discord permission bits, bounded by what the bot itself holds. The bot
// can never grant a role more than it has.
package permission

import "github.com/bwmarrin/discordgo"

// Outcome classifies the resolution of a single requested name.
type Outcome int

const (
	// Granted: the name is known and the grantor holds the bit.
	Granted Outcome = iota
	// Denied: the name is known but the grantor does not hold the bit.
	Denied
	// Unrecognized: the name is not in the allow-list.
	Unrecognized
)

// Resolution is the result of resolving one requested permission name.
type Resolution struct {
	Name    string
	Outcome Outcome
	Bit     int64 // zero when Unrecognized
}

// allowList is the fixed table of abstract names the generator may request.
// Order here is the order AllowedNames returns, which feeds the prompt.
var allowList = []struct {
	name string
	bit  int64
}{
	{"MANAGE_CHANNELS", discordgo.PermissionManageChannels},
	{"MANAGE_ROLES", discordgo.PermissionManageRoles},
	{"MANAGE_MESSAGES", discordgo.PermissionManageMessages},
	{"KICK_MEMBERS", discordgo.PermissionKickMembers},
	{"BAN_MEMBERS", discordgo.PermissionBanMembers},
	{"SEND_MESSAGES", discordgo.PermissionSendMessages},
	{"READ_MESSAGE_HISTORY", discordgo.PermissionReadMessageHistory},
	{"VIEW_CHANNEL", discordgo.PermissionViewChannel},
	{"CONNECT", discordgo.PermissionVoiceConnect},
	{"SPEAK", discordgo.PermissionVoiceSpeak},
	{"MUTE_MEMBERS", discordgo.PermissionVoiceMuteMembers},
	{"DEAFEN_MEMBERS", discordgo.PermissionVoiceDeafenMembers},
	{"MOVE_MEMBERS", discordgo.PermissionVoiceMoveMembers},
}

// AllowedNames returns the abstract permission names the resolver accepts.
func AllowedNames() []string {
	names := make([]string, len(allowList))
	for i, e := range allowList {
		names[i] = e.name
	}
	return names
}

// Resolve classifies a single requested name against the grantor's bits.
func Resolve(name string, grantor int64) Resolution {
	for _, e := range allowList {
		if e.name != name {
			continue
		}
		if holds(grantor, e.bit) {
			return Resolution{Name: name, Outcome: Granted, Bit: e.bit}
		}
		return Resolution{Name: name, Outcome: Denied, Bit: e.bit}
	}
	return Resolution{Name: name, Outcome: Unrecognized}
}

// ResolveSafe returns the union of bits for every requested name that is both
// known and held by the grantor. Unknown and unauthorized names are dropped;
// the result never exceeds the grantor's own permission set. Never errors.
func ResolveSafe(names []string, grantor int64) int64 {
	var bits int64
	for _, name := range names {
		if r := Resolve(name, grantor); r.Outcome == Granted {
			bits |= r.Bit
		}
	}
	return bits
}

// holds reports whether the grantor may grant bit. Administrator implies
// every permission.
func holds(grantor, bit int64) bool {
	if grantor&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return grantor&bit == bit
}
