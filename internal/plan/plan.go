// Package plan produces a dry-run view: the current guild layout and a
// proposed structure rendered into the same text shape, plus a patch-style
// diff between them. Nothing here mutates the guild.
package plan

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/guildsmith/internal/builder"
	"github.com/dshills/guildsmith/internal/render"
	"github.com/dshills/guildsmith/internal/schema"
)

// LayoutText renders a guild snapshot in the same indented shape as
// render.Tree so the two are directly diffable. Managed roles and the
// everyone role are omitted: a proposal never contains them and the nuke
// path never touches them.
func LayoutText(state *builder.GuildState) string {
	var sb strings.Builder

	// Categories in snapshot order, each followed by its children.
	loose := make([]builder.GuildChannel, 0)
	byParent := make(map[string][]builder.GuildChannel)
	for _, ch := range state.Channels {
		if ch.Type == builder.ChannelCategory {
			continue
		}
		if ch.ParentID == "" {
			loose = append(loose, ch)
			continue
		}
		byParent[ch.ParentID] = append(byParent[ch.ParentID], ch)
	}

	for _, ch := range state.Channels {
		if ch.Type != builder.ChannelCategory {
			continue
		}
		sb.WriteString(ch.Name)
		sb.WriteString("\n")
		for _, child := range byParent[ch.ID] {
			writeChannel(&sb, child)
		}
	}
	for _, ch := range loose {
		writeChannel(&sb, ch)
	}

	roles := make([]string, 0, len(state.Roles))
	for _, role := range state.Roles {
		if role.Everyone || role.Managed {
			continue
		}
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

func writeChannel(sb *strings.Builder, ch builder.GuildChannel) {
	kind := "text"
	if ch.Type == builder.ChannelVoice {
		kind = "voice"
	}
	sb.WriteString("  ")
	sb.WriteString(ch.Name)
	sb.WriteString(" [")
	sb.WriteString(kind)
	sb.WriteString("]\n")
}

// ProposalText renders a proposed structure in the diffable layout shape.
func ProposalText(s *schema.ServerStructure) string {
	return render.Tree(s)
}

// Diff returns patch text describing how the current layout would change to
// match the proposal. Empty when the two already match.
func Diff(current, proposed string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, proposed, false)
	patches := dmp.PatchMake(current, diffs)
	return dmp.PatchToText(patches)
}
