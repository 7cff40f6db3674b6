package render

import (
	"encoding/json"

	"github.com/dshills/guildsmith/internal/schema"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(s *schema.ServerStructure) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
