package validate

import (
	"strings"
	"testing"

	"github.com/dshills/guildsmith/internal/schema"
)

const minimalJSON = `{
  "categories": [
    {"name": "💬-general", "channels": [
      {"name": "💬chat", "type": "text"},
      {"name": "🎤lounge", "type": "voice"}
    ]}
  ],
  "roles": [
    {"name": "Member", "color": "#95A5A6", "permissions": ["SEND_MESSAGES"]}
  ]
}`

func TestParse_PlainJSON(t *testing.T) {
	s, err := Parse(minimalJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Categories) != 1 || len(s.Roles) != 1 {
		t.Errorf("got %d categories, %d roles", len(s.Categories), len(s.Roles))
	}
	if s.Categories[0].Channels[1].Kind != schema.KindVoice {
		t.Errorf("channel kind = %q, want voice", s.Categories[0].Channels[1].Kind)
	}
}

func TestParse_FencedJSON(t *testing.T) {
	raw := "```json\n" + minimalJSON + "\n```"
	if _, err := Parse(raw); err != nil {
		t.Fatalf("Parse fenced: %v", err)
	}
}

func TestParse_ProseAroundJSON(t *testing.T) {
	raw := "Here is your server structure:\n\n" + minimalJSON + "\n\nEnjoy!"
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse with prose: %v", err)
	}
	if s.Categories[0].Name != "💬-general" {
		t.Errorf("category name = %q", s.Categories[0].Name)
	}
}

func TestParse_NestedBracesInStrings(t *testing.T) {
	raw := `prefix {"categories":[{"name":"a{b}c","channels":[]}],"roles":[{"name":"r \"{\" ok"}]} suffix`
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse nested braces: %v", err)
	}
	if s.Categories[0].Name != "a{b}c" {
		t.Errorf("category name = %q, want a{b}c", s.Categories[0].Name)
	}
}

func TestParse_NoJSON(t *testing.T) {
	if _, err := Parse("I cannot help with that request."); err == nil {
		t.Error("expected error for non-JSON output, got nil")
	}
}

func TestParse_MissingRoles(t *testing.T) {
	raw := `{"categories":[{"name":"a","channels":[]}]}`
	_, err := Parse(raw)
	if err == nil || !strings.Contains(err.Error(), "no roles") {
		t.Errorf("expected no-roles error, got %v", err)
	}
}

func TestParse_MissingCategories(t *testing.T) {
	raw := `{"roles":[{"name":"Member"}]}`
	_, err := Parse(raw)
	if err == nil || !strings.Contains(err.Error(), "no categories") {
		t.Errorf("expected no-categories error, got %v", err)
	}
}

func TestParse_EmptyChannelName(t *testing.T) {
	raw := `{"categories":[{"name":"a","channels":[{"name":"  "}]}],"roles":[{"name":"r"}]}`
	if _, err := Parse(raw); err == nil {
		t.Error("expected error for blank channel name, got nil")
	}
}

func TestParse_NormalizesKindAndColor(t *testing.T) {
	raw := `{"categories":[{"name":"a","channels":[{"name":"c","type":"forum"}]}],"roles":[{"name":"r"}]}`
	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Categories[0].Channels[0].Kind != schema.KindText {
		t.Errorf("unknown kind normalized to %q, want text", s.Categories[0].Channels[0].Kind)
	}
	if s.Roles[0].Color != schema.DefaultRoleColor {
		t.Errorf("missing color defaulted to %q, want %q", s.Roles[0].Color, schema.DefaultRoleColor)
	}
}

func TestExtractObject_Unbalanced(t *testing.T) {
	if _, ok := extractObject(`{"categories": [`); ok {
		t.Error("expected no object for unbalanced braces")
	}
}

func TestStripFences_NoFences(t *testing.T) {
	if got := stripFences("  plain text  "); got != "plain text" {
		t.Errorf("stripFences = %q", got)
	}
}
