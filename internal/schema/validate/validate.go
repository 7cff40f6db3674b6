package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/guildsmith/internal/schema"
)

// Parse strips markdown fences, extracts the first balanced JSON object from
// the raw model output, unmarshals it, and validates the structure. Models
// often wrap JSON in prose or code fences; both are tolerated.
func Parse(raw string) (*schema.ServerStructure, error) {
	cleaned := stripFences(raw)

	obj, ok := extractObject(cleaned)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var s schema.ServerStructure
	if err := json.Unmarshal([]byte(obj), &s); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}

	if err := validateStructure(&s); err != nil {
		return nil, err
	}
	Normalize(&s)

	return &s, nil
}

// stripFences removes leading/trailing markdown code fences (```json ... ``` or ``` ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove first line (the fence opener)
		idx := strings.Index(s, "\n")
		if idx >= 0 {
			s = s[idx+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		idx := strings.LastIndex(s, "\n```")
		if idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractObject returns the first balanced top-level {...} span in s.
// Brace depth is tracked with string and escape awareness so braces inside
// JSON string values do not confuse the scan.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

func validateStructure(s *schema.ServerStructure) error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("structure has no categories")
	}
	if len(s.Roles) == 0 {
		return fmt.Errorf("structure has no roles")
	}
	for i, c := range s.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("category[%d]: name is required", i)
		}
		for j, ch := range c.Channels {
			if strings.TrimSpace(ch.Name) == "" {
				return fmt.Errorf("category[%d].channel[%d]: name is required", i, j)
			}
		}
	}
	for i, r := range s.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("role[%d]: name is required", i)
		}
	}
	return nil
}

// Normalize defaults unrecognized channel kinds to text and missing role
// colors to the standard grey.
func Normalize(s *schema.ServerStructure) {
	for i := range s.Categories {
		for j := range s.Categories[i].Channels {
			if !schema.IsValidKind(s.Categories[i].Channels[j].Kind) {
				s.Categories[i].Channels[j].Kind = schema.KindText
			}
		}
	}
	for i := range s.Roles {
		if s.Roles[i].Color == "" {
			s.Roles[i].Color = schema.DefaultRoleColor
		}
	}
}
