package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/builder"
	"github.com/dshills/guildsmith/internal/report"
)

// nukeConfirmWindow is how long the confirm/cancel buttons stay live.
const nukeConfirmWindow = 30 * time.Second

func (b *Bot) handleBuild(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil {
		b.replyEphemeral(s, i, "This command only works inside a server.")
		return
	}
	if !hasPermission(i.Member.Permissions, discordgo.PermissionManageChannels) {
		b.replyEphemeral(s, i, "You need the Manage Channels permission to build a server.")
		return
	}
	if retry, limited := b.cooldowns.Hit(i.Member.User.ID); limited {
		b.replyEphemeral(s, i, fmt.Sprintf("Slow down! Try again in %d seconds.", int(retry.Seconds())+1))
		return
	}

	theme := i.ApplicationCommandData().Options[0].StringValue()
	b.log.Info("build requested",
		zap.String("guild", i.GuildID),
		zap.String("user", i.Member.User.ID))

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		b.log.Warn("deferring build reply failed", zap.Error(err))
		return
	}

	ctx := context.Background()
	structure := b.generator.Generate(ctx, theme)
	b.editEmbed(s, i.Interaction, buildProgressEmbed(structure))

	bld := builder.New(newGuildAPI(s, i.GuildID),
		builder.WithLogger(b.log),
		builder.WithProtectedChannel(b.cfg.ProtectedChannel))
	result := bld.BuildServer(ctx, structure)
	outcome := report.ForBuild(result)

	b.log.Info("build finished",
		zap.String("guild", i.GuildID),
		zap.String("outcome", string(outcome)),
		zap.Int("errors", len(result.Errors)))
	b.editEmbed(s, i.Interaction, buildSummaryEmbed(outcome, result))
}

func (b *Bot) handleNuke(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil {
		b.replyEphemeral(s, i, "This command only works inside a server.")
		return
	}
	if !hasPermission(i.Member.Permissions, discordgo.PermissionAdministrator) {
		b.replyEphemeral(s, i, "Only administrators can nuke the server.")
		return
	}

	confirmID := fmt.Sprintf("%s:%s:%s", nukeConfirmPrefix, i.ID, i.Member.User.ID)
	cancelID := fmt.Sprintf("%s:%s:%s", nukeCancelPrefix, i.ID, i.Member.User.ID)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{nukeConfirmEmbed(b.cfg.ProtectedChannel)},
			Flags:  discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Nuke it", Style: discordgo.DangerButton, CustomID: confirmID},
					discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: cancelID},
				}},
			},
		},
	})
	if err != nil {
		b.log.Warn("nuke confirmation reply failed", zap.Error(err))
		return
	}

	b.armNuke(s, i.Interaction, i.ID, i.Member.User.ID)
}

// armNuke records the pending confirmation and schedules its expiry.
func (b *Bot) armNuke(s *discordgo.Session, interaction *discordgo.Interaction, id, userID string) {
	p := &pendingNuke{interaction: interaction, userID: userID}
	p.timer = time.AfterFunc(nukeConfirmWindow, func() {
		if b.takePending(id) == nil {
			return
		}
		b.editEmbed(s, interaction, nukeTimeoutEmbed())
	})

	b.mu.Lock()
	b.pending[id] = p
	b.mu.Unlock()
}

// takePending removes and returns the pending nuke for id, or nil.
func (b *Bot) takePending(id string) *pendingNuke {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.pending[id]
	delete(b.pending, id)
	return p
}

func (b *Bot) handleNukeComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, id, userID, ok := parseNukeCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}
	if i.Member == nil || i.Member.User.ID != userID {
		b.replyEphemeral(s, i, "Only the person who ran /nuke can respond to this.")
		return
	}

	p := b.takePending(id)
	if p == nil {
		b.replyEphemeral(s, i, "This confirmation has expired.")
		return
	}
	p.timer.Stop()

	if action == nukeCancelPrefix {
		b.updateEmbed(s, i, nukeCancelledEmbed())
		return
	}

	b.updateEmbed(s, i, nukeProgressEmbed())
	b.log.Info("nuke confirmed",
		zap.String("guild", i.GuildID),
		zap.String("user", userID))

	bld := builder.New(newGuildAPI(s, i.GuildID),
		builder.WithLogger(b.log),
		builder.WithProtectedChannel(b.cfg.ProtectedChannel))
	result := bld.NukeServer(context.Background())
	outcome := report.ForNuke(result)

	b.log.Info("nuke finished",
		zap.String("guild", i.GuildID),
		zap.String("outcome", string(outcome)),
		zap.Int("errors", len(result.Errors)))
	b.editEmbed(s, i.Interaction, nukeSummaryEmbed(outcome, result))
}

// parseNukeCustomID splits "action:interactionID:userID".
func parseNukeCustomID(customID string) (action, id, userID string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	if parts[0] != nukeConfirmPrefix && parts[0] != nukeCancelPrefix {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// replyEphemeral sends a short ephemeral text response.
func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Warn("ephemeral reply failed", zap.Error(err))
	}
}

// editEmbed replaces an earlier response with a single embed and drops any
// components it carried.
func (b *Bot) editEmbed(s *discordgo.Session, interaction *discordgo.Interaction, embed *discordgo.MessageEmbed) {
	embeds := []*discordgo.MessageEmbed{embed}
	components := []discordgo.MessageComponent{}
	_, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		b.log.Warn("response edit failed", zap.Error(err))
	}
}

// updateEmbed answers a component interaction by rewriting its message in
// place.
func (b *Bot) updateEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		b.log.Warn("message update failed", zap.Error(err))
	}
}
