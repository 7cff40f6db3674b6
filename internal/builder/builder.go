// Package builder applies a server structure to a live guild, one platform
// mutation at a time. The operation is deliberately not transactional: a
// per-item failure is recorded and iteration continues, so a partially built
// server is an accepted, fully reported outcome.
package builder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/permission"
	"github.com/dshills/guildsmith/internal/schema"
)

// DefaultProtectedChannel is the text channel the nuke path never deletes.
const DefaultProtectedChannel = "general"

// Builder reconciles structures against a guild through a GuildAPI.
type Builder struct {
	api              GuildAPI
	log              *zap.Logger
	protectedChannel string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for per-entity mutation logging.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithProtectedChannel overrides the text channel name the nuke path keeps.
func WithProtectedChannel(name string) Option {
	return func(b *Builder) { b.protectedChannel = name }
}

// New returns a Builder over the given guild API.
func New(api GuildAPI, opts ...Option) *Builder {
	b := &Builder{
		api:              api,
		log:              zap.NewNop(),
		protectedChannel: DefaultProtectedChannel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildServer creates the structure's roles, then its categories, then each
// category's channels, strictly in document order. Every platform call is
// awaited before the next is issued. Per-item failures are recorded in
// Errors and do not stop independent items; a failed category skips its
// channels since they would have no parent.
func (b *Builder) BuildServer(ctx context.Context, s *schema.ServerStructure) *BuildResult {
	result := &BuildResult{}

	state, err := b.api.Snapshot(ctx)
	if err != nil {
		// Without the snapshot there is no permission ceiling to resolve
		// against; this is the one systemic failure of the build path.
		result.Errors = append(result.Errors, fmt.Sprintf("Server build failed: %s", err))
		return result
	}

	for _, role := range s.Roles {
		perms := permission.ResolveSafe(role.Permissions, state.BotPermissions)
		handle, err := b.api.CreateRole(ctx, RoleCreate{
			Name:        role.Name,
			Color:       parseColor(role.Color),
			Permissions: perms,
		})
		if err != nil {
			b.log.Warn("role creation failed", zap.String("role", role.Name), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to create role %s: %s", role.Name, err))
			continue
		}
		b.log.Info("created role", zap.String("role", handle.Name), zap.String("id", handle.ID))
		result.Roles = append(result.Roles, handle)
	}

	for _, cat := range s.Categories {
		catHandle, err := b.api.CreateChannel(ctx, ChannelCreate{Name: cat.Name, Type: ChannelCategory})
		if err != nil {
			b.log.Warn("category creation failed", zap.String("category", cat.Name), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to create category %s: %s", cat.Name, err))
			continue
		}
		b.log.Info("created category", zap.String("category", catHandle.Name), zap.String("id", catHandle.ID))
		result.Categories = append(result.Categories, catHandle)

		for _, ch := range cat.Channels {
			handle, err := b.api.CreateChannel(ctx, ChannelCreate{
				Name:     ch.Name,
				Type:     channelType(ch.Kind),
				ParentID: catHandle.ID,
			})
			if err != nil {
				b.log.Warn("channel creation failed", zap.String("channel", ch.Name), zap.Error(err))
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to create channel %s: %s", ch.Name, err))
				continue
			}
			b.log.Info("created channel",
				zap.String("channel", handle.Name),
				zap.String("kind", string(ch.Kind)),
				zap.String("id", handle.ID))
			result.Channels = append(result.Channels, handle)
		}
	}

	return result
}

// channelType maps a document channel kind to the platform channel type.
func channelType(k schema.ChannelKind) ChannelType {
	if k == schema.KindVoice {
		return ChannelVoice
	}
	return ChannelText
}

// parseColor converts a "#RRGGBB" string to an integer color value. Invalid
// or missing colors fall back to the default role grey.
func parseColor(hex string) int {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		v, _ = strconv.ParseInt(strings.TrimPrefix(schema.DefaultRoleColor, "#"), 16, 32)
	}
	return int(v)
}
