package render

import (
	"fmt"

	"github.com/dshills/guildsmith/internal/schema"
)

// Renderer formats a server structure for output.
type Renderer interface {
	Render(s *schema.ServerStructure) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "tree".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "tree":
		return &treeRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, tree", format)
	}
}
