package plan

import (
	"strings"
	"testing"

	"github.com/dshills/guildsmith/internal/builder"
	"github.com/dshills/guildsmith/internal/schema"
)

func snapshot() *builder.GuildState {
	return &builder.GuildState{
		Channels: []builder.GuildChannel{
			{ID: "c1", Name: "💬-general", Type: builder.ChannelCategory},
			{ID: "1", Name: "💬chat", Type: builder.ChannelText, ParentID: "c1"},
			{ID: "2", Name: "🎤lounge", Type: builder.ChannelVoice, ParentID: "c1"},
			{ID: "3", Name: "orphan", Type: builder.ChannelText},
		},
		Roles: []builder.GuildRole{
			{ID: "r0", Name: "@everyone", Everyone: true},
			{ID: "r1", Name: "SomeBot", Managed: true},
			{ID: "r2", Name: "Member"},
			{ID: "r3", Name: "Admin"},
		},
	}
}

func proposal() *schema.ServerStructure {
	return &schema.ServerStructure{
		Categories: []schema.Category{
			{Name: "💬-general", Channels: []schema.Channel{
				{Name: "💬chat", Kind: schema.KindText},
				{Name: "🎤lounge", Kind: schema.KindVoice},
			}},
		},
		Roles: []schema.Role{
			{Name: "Admin"},
			{Name: "Member"},
		},
	}
}

func TestLayoutText_GroupsByCategory(t *testing.T) {
	text := LayoutText(snapshot())
	if !strings.Contains(text, "💬-general\n  💬chat [text]\n  🎤lounge [voice]\n") {
		t.Errorf("layout missing grouped category:\n%s", text)
	}
	if !strings.Contains(text, "  orphan [text]\n") {
		t.Errorf("layout missing loose channel:\n%s", text)
	}
}

func TestLayoutText_OmitsManagedAndEveryone(t *testing.T) {
	text := LayoutText(snapshot())
	if strings.Contains(text, "@everyone") || strings.Contains(text, "SomeBot") {
		t.Errorf("layout leaked protected roles:\n%s", text)
	}
}

func TestDiff_EmptyWhenMatching(t *testing.T) {
	state := snapshot()
	// Drop the channel the proposal doesn't have.
	state.Channels = state.Channels[:3]

	if d := Diff(LayoutText(state), ProposalText(proposal())); d != "" {
		t.Errorf("expected empty diff for matching layouts, got:\n%s", d)
	}
}

func TestDiff_ReportsChanges(t *testing.T) {
	d := Diff(LayoutText(snapshot()), ProposalText(proposal()))
	if d == "" {
		t.Fatal("expected non-empty diff")
	}
	if !strings.Contains(d, "orphan") {
		t.Errorf("diff does not mention the channel to remove:\n%s", d)
	}
}
