package builder

import "context"

// ChannelType is the platform channel classification the builder cares
// about. Categories are themselves channels on Discord.
type ChannelType int

const (
	ChannelCategory ChannelType = iota
	ChannelText
	ChannelVoice
)

// RoleCreate is a request to create one role.
type RoleCreate struct {
	Name        string
	Color       int
	Permissions int64
}

// ChannelCreate is a request to create one channel. ParentID is empty for
// categories and top-level channels.
type ChannelCreate struct {
	Name     string
	Type     ChannelType
	ParentID string
}

// RoleHandle identifies a created role.
type RoleHandle struct {
	ID   string
	Name string
}

// ChannelHandle identifies a created channel or category.
type ChannelHandle struct {
	ID   string
	Name string
	Type ChannelType
}

// GuildChannel describes an existing channel in the guild snapshot.
// System marks platform-managed channels (system messages, rules,
// community updates) that the nuke path must never touch.
type GuildChannel struct {
	ID       string
	Name     string
	Type     ChannelType
	ParentID string
	System   bool
}

// GuildRole describes an existing role in the guild snapshot.
type GuildRole struct {
	ID       string
	Name     string
	Managed  bool
	Position int
	Everyone bool
}

// GuildState is a point-in-time snapshot of the guild plus the acting
// principal's authority: its effective permission bits and the position of
// its highest role.
type GuildState struct {
	Channels       []GuildChannel
	Roles          []GuildRole
	BotPermissions int64
	BotTopPosition int
}

// GuildAPI is the platform mutation surface the builder drives. One call per
// entity; each call may fail independently. Implementations must not retry.
type GuildAPI interface {
	Snapshot(ctx context.Context) (*GuildState, error)
	CreateRole(ctx context.Context, req RoleCreate) (RoleHandle, error)
	CreateChannel(ctx context.Context, req ChannelCreate) (ChannelHandle, error)
	DeleteChannel(ctx context.Context, ch GuildChannel) error
	DeleteRole(ctx context.Context, r GuildRole) error
}

// BuildResult is the ledger of a build run: what was created, in creation
// order, and one human-readable error per failed item.
type BuildResult struct {
	Roles      []RoleHandle
	Categories []ChannelHandle
	Channels   []ChannelHandle
	Errors     []string
}

// NukeResult is the ledger of a nuke run.
type NukeResult struct {
	DeletedChannels int
	DeletedRoles    int
	BaselineRoles   []RoleHandle
	Errors          []string
}
