package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dshills/guildsmith/internal/builder"
	"github.com/dshills/guildsmith/internal/report"
	"github.com/dshills/guildsmith/internal/schema"
)

// Embed accent colors, flat-UI palette.
const (
	colorGreen  = 0x2ECC71
	colorOrange = 0xE67E22
	colorRed    = 0xE74C3C
	colorGrey   = 0x95A5A6
)

// maxErrorLines caps how many error lines a summary embed shows.
const maxErrorLines = 3

func outcomeColor(o report.Outcome) int {
	switch o {
	case report.OutcomeComplete:
		return colorGreen
	case report.OutcomePartial:
		return colorOrange
	default:
		return colorRed
	}
}

func buildProgressEmbed(s *schema.ServerStructure) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🔨 Building your server...",
		Description: fmt.Sprintf("Creating %d categories, %d channels, and %d roles.",
			len(s.Categories), s.ChannelCount(), len(s.Roles)),
		Color: colorGrey,
	}
}

func buildSummaryEmbed(o report.Outcome, r *builder.BuildResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: summaryTitle(o, "Server build"),
		Color: outcomeColor(o),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Categories", Value: fmt.Sprintf("%d", len(r.Categories)), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d", len(r.Channels)), Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(r.Roles)), Inline: true},
		},
	}
	if warnings := report.SummarizeErrors(r.Errors, maxErrorLines); warnings != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Warnings", Value: warnings})
	}
	return embed
}

func nukeConfirmEmbed(protectedChannel string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚠️ Nuke this server?",
		Description: fmt.Sprintf(
			"This deletes every channel and role except #%s, system channels, and managed roles, then restores the Member/Moderator/Admin baseline. This cannot be undone.",
			protectedChannel),
		Color: colorRed,
	}
}

func nukeProgressEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💥 Nuking the server...",
		Description: "Deleting channels and roles.",
		Color:       colorGrey,
	}
}

func nukeCancelledEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Nuke cancelled",
		Description: "Nothing was deleted.",
		Color:       colorGrey,
	}
}

func nukeTimeoutEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Nuke timed out",
		Description: "No confirmation within 30 seconds. Nothing was deleted.",
		Color:       colorGrey,
	}
}

func nukeSummaryEmbed(o report.Outcome, r *builder.NukeResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: summaryTitle(o, "Server nuke"),
		Color: outcomeColor(o),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channels deleted", Value: fmt.Sprintf("%d", r.DeletedChannels), Inline: true},
			{Name: "Roles deleted", Value: fmt.Sprintf("%d", r.DeletedRoles), Inline: true},
			{Name: "Baseline roles", Value: fmt.Sprintf("%d", len(r.BaselineRoles)), Inline: true},
		},
	}
	if warnings := report.SummarizeErrors(r.Errors, maxErrorLines); warnings != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Warnings", Value: warnings})
	}
	return embed
}

func summaryTitle(o report.Outcome, what string) string {
	switch o {
	case report.OutcomeComplete:
		return "✅ " + what + " complete"
	case report.OutcomePartial:
		return "⚠️ " + what + " partially complete"
	default:
		return "❌ " + what + " failed"
	}
}
