package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/guildsmith/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("structure").Parse(`# Server Plan

**Categories:** {{ len .Categories }} | **Channels:** {{ .ChannelCount }} ({{ .VoiceCount }} voice) | **Roles:** {{ len .Roles }}
{{ range .Categories }}
## {{ .Name }}
{{ range .Channels }}- {{ .Name }} ({{ .Kind }})
{{ end }}{{ end }}
---

## Roles
{{ range .Roles }}- **{{ .Name }}** {{ .Color }}{{ if .Permissions }}: {{ range $i, $p := .Permissions }}{{ if $i }}, {{ end }}{{ $p }}{{ end }}{{ end }}
{{ end }}`))

func (r *markdownRenderer) Render(s *schema.ServerStructure) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
