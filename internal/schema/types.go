package schema

// ServerStructure is the top-level server layout document produced by the
// generator and consumed by the builder. Field names match the JSON the
// model is asked to emit.
type ServerStructure struct {
	Categories []Category `json:"categories"`
	Roles      []Role     `json:"roles"`
}

// Category groups channels under a display name. Creation order is display order.
type Category struct {
	Name     string    `json:"name"`
	Channels []Channel `json:"channels"`
}

// ChannelKind distinguishes text and voice channels.
type ChannelKind string

const (
	KindText  ChannelKind = "text"
	KindVoice ChannelKind = "voice"
)

// IsValidKind reports whether k is one of the two defined channel kinds.
func IsValidKind(k ChannelKind) bool {
	return k == KindText || k == KindVoice
}

// Channel is a single channel inside a category.
type Channel struct {
	Name string      `json:"name"`
	Kind ChannelKind `json:"type"`
}

// DefaultRoleColor is applied when the model omits a role color.
const DefaultRoleColor = "#99AAB5"

// Role is a role the builder should create.
type Role struct {
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description,omitempty"`
}

// ChannelCount returns the total channel count across all categories.
func (s *ServerStructure) ChannelCount() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Channels)
	}
	return n
}

// VoiceCount returns the voice channel count across all categories.
func (s *ServerStructure) VoiceCount() int {
	n := 0
	for _, c := range s.Categories {
		for _, ch := range c.Channels {
			if ch.Kind == KindVoice {
				n++
			}
		}
	}
	return n
}
