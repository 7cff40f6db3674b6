package builder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/permission"
	"github.com/dshills/guildsmith/internal/schema"
)

// baselineRoles are recreated after a nuke, in this order. Permissions are
// abstract names resolved against the bot's own set at run time.
var baselineRoles = []schema.Role{
	{Name: "Member", Color: "#95A5A6", Permissions: []string{"SEND_MESSAGES", "VIEW_CHANNEL"}},
	{Name: "Moderator", Color: "#3498DB", Permissions: []string{"MANAGE_MESSAGES", "SEND_MESSAGES", "VIEW_CHANNEL"}},
	{Name: "Admin", Color: "#E74C3C", Permissions: []string{"MANAGE_CHANNELS", "MANAGE_ROLES", "KICK_MEMBERS"}},
}

// NukeServer deletes every deletable channel and role, then recreates the
// baseline role set. The protected default text channel, platform-managed
// channels and roles, the everyone role, and roles at or above the bot's own
// highest role are never touched. Per-item failures are recorded and
// iteration continues; there is no preview or undo here.
func (b *Builder) NukeServer(ctx context.Context) *NukeResult {
	result := &NukeResult{}

	state, err := b.api.Snapshot(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Server nuke failed: %s", err))
		return result
	}

	for _, ch := range state.Channels {
		if !b.deletableChannel(ch) {
			continue
		}
		if err := b.api.DeleteChannel(ctx, ch); err != nil {
			b.log.Warn("channel deletion failed", zap.String("channel", ch.Name), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to delete channel %s: %s", ch.Name, err))
			continue
		}
		b.log.Info("deleted channel", zap.String("channel", ch.Name), zap.String("id", ch.ID))
		result.DeletedChannels++
	}

	for _, role := range state.Roles {
		if !deletableRole(role, state.BotTopPosition) {
			continue
		}
		if err := b.api.DeleteRole(ctx, role); err != nil {
			b.log.Warn("role deletion failed", zap.String("role", role.Name), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to delete role %s: %s", role.Name, err))
			continue
		}
		b.log.Info("deleted role", zap.String("role", role.Name), zap.String("id", role.ID))
		result.DeletedRoles++
	}

	for _, role := range baselineRoles {
		perms := permission.ResolveSafe(role.Permissions, state.BotPermissions)
		handle, err := b.api.CreateRole(ctx, RoleCreate{
			Name:        role.Name,
			Color:       parseColor(role.Color),
			Permissions: perms,
		})
		if err != nil {
			b.log.Warn("baseline role creation failed", zap.String("role", role.Name), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to create basic role %s: %s", role.Name, err))
			continue
		}
		b.log.Info("created baseline role", zap.String("role", handle.Name), zap.String("id", handle.ID))
		result.BaselineRoles = append(result.BaselineRoles, handle)
	}

	return result
}

// deletableChannel reports whether the nuke path may delete ch. The
// protected default text channel and platform-managed channels survive.
func (b *Builder) deletableChannel(ch GuildChannel) bool {
	if ch.System {
		return false
	}
	if ch.Name == b.protectedChannel && ch.Type == ChannelText {
		return false
	}
	return true
}

// deletableRole reports whether the nuke path may delete role. The everyone
// role, managed roles, and roles at or above the bot's highest position are
// outside the bot's authority.
func deletableRole(role GuildRole, botTop int) bool {
	if role.Everyone || role.Managed {
		return false
	}
	return role.Position < botTop
}
