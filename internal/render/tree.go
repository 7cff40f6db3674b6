package render

import (
	"sort"
	"strings"

	"github.com/dshills/guildsmith/internal/schema"
)

type treeRenderer struct{}

func (r *treeRenderer) Render(s *schema.ServerStructure) ([]byte, error) {
	return []byte(Tree(s)), nil
}

// Tree renders the structure as an indented layout, one entity per line.
// The same shape is produced from live guild snapshots by the plan package,
// so the two are directly diffable. Roles are sorted by name because Discord
// reports them in position order, which a proposal does not have.
func Tree(s *schema.ServerStructure) string {
	var sb strings.Builder
	for _, cat := range s.Categories {
		sb.WriteString(cat.Name)
		sb.WriteString("\n")
		for _, ch := range cat.Channels {
			sb.WriteString("  ")
			sb.WriteString(ch.Name)
			sb.WriteString(" [")
			sb.WriteString(string(ch.Kind))
			sb.WriteString("]\n")
		}
	}

	roles := make([]string, 0, len(s.Roles))
	for _, role := range s.Roles {
		roles = append(roles, role.Name)
	}
	sort.Strings(roles)

	sb.WriteString("roles\n")
	for _, name := range roles {
		sb.WriteString("  ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return sb.String()
}
