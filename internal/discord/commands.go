package discord

import "github.com/bwmarrin/discordgo"

const (
	commandBuild = "build"
	commandNuke  = "nuke"

	// maxThemeLength matches the sanitizer's cap so Discord rejects oversize
	// input before it reaches us.
	maxThemeLength = 300
)

// Component custom IDs carry the originating interaction ID and the invoker's
// user ID: "nuke_confirm:<interactionID>:<userID>".
const (
	nukeConfirmPrefix = "nuke_confirm"
	nukeCancelPrefix  = "nuke_cancel"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandBuild,
			Description: "Generate and build a themed server layout",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "theme",
					Description: "What the server is about, in your own words",
					Required:    true,
					MaxLength:   maxThemeLength,
				},
			},
		},
		{
			Name:        commandNuke,
			Description: "Delete all channels and roles, then restore a minimal baseline",
		},
	}
}

// hasPermission reports whether the member permission set includes the bit.
// Administrator implies everything.
func hasPermission(memberPerms int64, bit int64) bool {
	if memberPerms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return memberPerms&bit == bit
}
