// Package discord connects the generation and build pipeline to a live
// Discord gateway session: slash-command registration, interaction dispatch,
// and the guild adapter the builder mutates through.
package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/config"
	"github.com/dshills/guildsmith/internal/cooldown"
	"github.com/dshills/guildsmith/internal/generate"
)

// Bot owns the gateway session and the per-user command cooldowns.
type Bot struct {
	session   *discordgo.Session
	cfg       *config.Config
	generator *generate.Generator
	cooldowns *cooldown.Table
	log       *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingNuke
}

// pendingNuke is an unconfirmed nuke request awaiting a button press.
type pendingNuke struct {
	interaction *discordgo.Interaction
	userID      string
	timer       *time.Timer
}

// NewBot builds a Bot over a fresh session. The session is not opened yet;
// call Start.
func NewBot(cfg *config.Config, gen *generate.Generator, log *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord token must be set")
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	if log == nil {
		log = zap.NewNop()
	}
	b := &Bot{
		session:   session,
		cfg:       cfg,
		generator: gen,
		cooldowns: cooldown.New(time.Duration(cfg.CooldownSeconds) * time.Second),
		log:       log,
		pending:   make(map[string]*pendingNuke),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway: %w", err)
	}
	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return err
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

// registerCommands bulk-overwrites the global command set so stale
// definitions from earlier runs disappear.
func (b *Bot) registerCommands() error {
	appID := b.cfg.AppID
	if appID == "" {
		appID = b.session.State.User.ID
	}
	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, "", commandDefinitions())
	if err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}
	b.log.Info("commands registered", zap.Int("count", len(registered)))
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("gateway ready",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandBuild:
			b.handleBuild(s, i)
		case commandNuke:
			b.handleNuke(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleNukeComponent(s, i)
	}
}
