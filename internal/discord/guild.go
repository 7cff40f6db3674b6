package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dshills/guildsmith/internal/builder"
)

// Snapshot fetches a guild's current state over REST without opening a
// gateway connection. Used by the dry-run plan path.
func Snapshot(ctx context.Context, token, guildID string) (*builder.GuildState, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return newGuildAPI(session, guildID).Snapshot(ctx)
}

// guildAPI adapts a discordgo session to the builder's GuildAPI. One Discord
// REST call per method; rate limiting is the library's concern.
type guildAPI struct {
	session *discordgo.Session
	guildID string
}

func newGuildAPI(session *discordgo.Session, guildID string) *guildAPI {
	return &guildAPI{session: session, guildID: guildID}
}

func (g *guildAPI) Snapshot(ctx context.Context) (*builder.GuildState, error) {
	guild, err := g.session.Guild(g.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching guild: %w", err)
	}
	channels, err := g.session.GuildChannels(g.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching channels: %w", err)
	}
	roles, err := g.session.GuildRoles(g.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching roles: %w", err)
	}
	selfID, err := g.selfID(ctx)
	if err != nil {
		return nil, err
	}
	me, err := g.session.GuildMember(g.guildID, selfID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching own membership: %w", err)
	}

	perms, top := botAuthority(g.guildID, roles, me)
	return &builder.GuildState{
		Channels:       snapshotChannels(guild, channels),
		Roles:          snapshotRoles(g.guildID, roles),
		BotPermissions: perms,
		BotTopPosition: top,
	}, nil
}

// selfID returns the bot's own user ID. The gateway fills session state on
// ready; a REST-only session falls back to a @me lookup.
func (g *guildAPI) selfID(ctx context.Context) (string, error) {
	if g.session.State != nil && g.session.State.User != nil {
		return g.session.State.User.ID, nil
	}
	u, err := g.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching own user: %w", err)
	}
	return u.ID, nil
}

func (g *guildAPI) CreateRole(ctx context.Context, req builder.RoleCreate) (builder.RoleHandle, error) {
	color := req.Color
	perms := req.Permissions
	role, err := g.session.GuildRoleCreate(g.guildID, &discordgo.RoleParams{
		Name:        req.Name,
		Color:       &color,
		Permissions: &perms,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return builder.RoleHandle{}, err
	}
	return builder.RoleHandle{ID: role.ID, Name: role.Name}, nil
}

func (g *guildAPI) CreateChannel(ctx context.Context, req builder.ChannelCreate) (builder.ChannelHandle, error) {
	ch, err := g.session.GuildChannelCreateComplex(g.guildID, discordgo.GuildChannelCreateData{
		Name:     req.Name,
		Type:     platformChannelType(req.Type),
		ParentID: req.ParentID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return builder.ChannelHandle{}, err
	}
	return builder.ChannelHandle{ID: ch.ID, Name: ch.Name, Type: req.Type}, nil
}

func (g *guildAPI) DeleteChannel(ctx context.Context, ch builder.GuildChannel) error {
	_, err := g.session.ChannelDelete(ch.ID, discordgo.WithContext(ctx))
	return err
}

func (g *guildAPI) DeleteRole(ctx context.Context, r builder.GuildRole) error {
	return g.session.GuildRoleDelete(g.guildID, r.ID, discordgo.WithContext(ctx))
}

// platformChannelType maps the builder channel type to the Discord one.
func platformChannelType(t builder.ChannelType) discordgo.ChannelType {
	switch t {
	case builder.ChannelCategory:
		return discordgo.ChannelTypeGuildCategory
	case builder.ChannelVoice:
		return discordgo.ChannelTypeGuildVoice
	default:
		return discordgo.ChannelTypeGuildText
	}
}

// builderChannelType maps a Discord channel type to the builder's coarser
// classification. Anything that is not a category or voice-like channel is
// treated as text.
func builderChannelType(t discordgo.ChannelType) builder.ChannelType {
	switch t {
	case discordgo.ChannelTypeGuildCategory:
		return builder.ChannelCategory
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return builder.ChannelVoice
	default:
		return builder.ChannelText
	}
}

// snapshotChannels converts the channel list, marking platform-designated
// channels (system messages, rules, community updates) as protected.
func snapshotChannels(guild *discordgo.Guild, channels []*discordgo.Channel) []builder.GuildChannel {
	out := make([]builder.GuildChannel, 0, len(channels))
	for _, ch := range channels {
		system := ch.ID == guild.SystemChannelID ||
			ch.ID == guild.RulesChannelID ||
			ch.ID == guild.PublicUpdatesChannelID
		out = append(out, builder.GuildChannel{
			ID:       ch.ID,
			Name:     ch.Name,
			Type:     builderChannelType(ch.Type),
			ParentID: ch.ParentID,
			System:   system,
		})
	}
	return out
}

// snapshotRoles converts the role list. The everyone role shares the guild's ID.
func snapshotRoles(guildID string, roles []*discordgo.Role) []builder.GuildRole {
	out := make([]builder.GuildRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, builder.GuildRole{
			ID:       r.ID,
			Name:     r.Name,
			Managed:  r.Managed,
			Position: r.Position,
			Everyone: r.ID == guildID,
		})
	}
	return out
}

// botAuthority computes the bot's effective guild-level permission bits and
// its highest role position from its member role list. The everyone role
// always applies.
func botAuthority(guildID string, roles []*discordgo.Role, me *discordgo.Member) (perms int64, top int) {
	byID := make(map[string]*discordgo.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}

	if everyone, ok := byID[guildID]; ok {
		perms |= everyone.Permissions
	}
	for _, id := range me.Roles {
		r, ok := byID[id]
		if !ok {
			continue
		}
		perms |= r.Permissions
		if r.Position > top {
			top = r.Position
		}
	}
	return perms, top
}
