package generate

import (
	"strings"

	"github.com/dshills/guildsmith/internal/flavor"
	"github.com/dshills/guildsmith/internal/schema"
)

// Fallback returns the hand-authored structure used when generation fails.
// It is deterministic for a given theme, parameterized only by the detected
// flavor and a slug of the theme, and satisfies every structure invariant
// unconditionally.
func Fallback(theme string) *schema.ServerStructure {
	f := flavor.Detect(theme)
	slug := slugify(theme)

	return &schema.ServerStructure{
		Categories: []schema.Category{
			{
				Name: "📢-welcome",
				Channels: []schema.Channel{
					{Name: "👋welcome", Kind: schema.KindText},
					{Name: "📜rules", Kind: schema.KindText},
					{Name: "📢announcements", Kind: schema.KindText},
				},
			},
			{
				Name: f.ChatEmoji + "-general",
				Channels: []schema.Channel{
					{Name: f.ChatEmoji + slug + "-chat", Kind: schema.KindText},
					{Name: "🎯discussion", Kind: schema.KindText},
					{Name: f.ShowEmoji + "showcase", Kind: schema.KindText},
				},
			},
			{
				Name: f.VoiceEmoji + "-voice",
				Channels: []schema.Channel{
					{Name: f.VoiceEmoji + "general-voice", Kind: schema.KindVoice},
					{Name: "🎵music-lounge", Kind: schema.KindVoice},
				},
			},
		},
		Roles: []schema.Role{
			{
				Name:        "Admin",
				Color:       "#E74C3C",
				Permissions: []string{"MANAGE_MESSAGES", "KICK_MEMBERS"},
			},
			{
				Name:        "Moderator",
				Color:       "#3498DB",
				Permissions: []string{"MANAGE_MESSAGES"},
			},
			{
				Name:        f.RolePrefix,
				Color:       "#95A5A6",
				Permissions: []string{"SEND_MESSAGES", "VIEW_CHANNEL"},
			},
		},
	}
}

// slugMaxLen keeps fallback channel names well under Discord's 100-char limit.
const slugMaxLen = 20

// slugify lowercases the theme and reduces it to a dash-separated channel
// name fragment. Empty or fully non-alphanumeric themes become "general".
func slugify(theme string) string {
	var sb strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(theme) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
		if sb.Len() >= slugMaxLen {
			break
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		return "general"
	}
	return slug
}
