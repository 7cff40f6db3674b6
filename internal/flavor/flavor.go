// Package flavor selects a themed set of emoji and role prefixes for the
// deterministic fallback structure, keyed on keywords in the user's theme.
package flavor

import "strings"

// Flavor holds the cosmetic parameters a fallback structure is built with.
type Flavor struct {
	Name       string
	Keywords   []string
	ChatEmoji  string
	VoiceEmoji string
	ShowEmoji  string
	RolePrefix string
}

// registry lists flavors in match-priority order; Detect returns the first
// whose keyword appears in the theme.
var registry = []*Flavor{
	gaming(),
	music(),
	anime(),
}

// Detect returns the flavor matching the theme, or the community default
// when no keyword matches. Matching is case-insensitive substring search.
func Detect(theme string) *Flavor {
	lowered := strings.ToLower(theme)
	for _, f := range registry {
		for _, kw := range f.Keywords {
			if strings.Contains(lowered, kw) {
				return f
			}
		}
	}
	return community()
}
