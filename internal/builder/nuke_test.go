package builder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func nukeFixture() *fakeGuild {
	g := newFakeGuild()
	g.state.Channels = []GuildChannel{
		{ID: "1", Name: "general", Type: ChannelText},
		{ID: "2", Name: "random", Type: ChannelText},
		{ID: "3", Name: "old-category", Type: ChannelCategory},
		{ID: "4", Name: "old-voice", Type: ChannelVoice},
		{ID: "5", Name: "memes", Type: ChannelText},
	}
	g.state.Roles = []GuildRole{
		{ID: "r1", Name: "@everyone", Everyone: true, Position: 0},
		{ID: "r2", Name: "SomeBot", Managed: true, Position: 5},
		{ID: "r3", Name: "OldRole", Position: 3},
		{ID: "r4", Name: "ServerOwner", Position: 20},
	}
	g.state.BotTopPosition = 10
	return g
}

func TestNukeServer_ProtectsGeneral(t *testing.T) {
	g := nukeFixture()
	result := New(g).NukeServer(context.Background())

	if result.DeletedChannels != 4 {
		t.Errorf("deleted %d channels, want 4", result.DeletedChannels)
	}
	for _, name := range g.deletedChannels {
		if name == "general" {
			t.Error("protected channel was deleted")
		}
	}
}

func TestNukeServer_ProtectsGeneralTextOnly(t *testing.T) {
	g := nukeFixture()
	// A voice channel named "general" is not the protected default.
	g.state.Channels = append(g.state.Channels, GuildChannel{ID: "6", Name: "general", Type: ChannelVoice})
	result := New(g).NukeServer(context.Background())

	if result.DeletedChannels != 5 {
		t.Errorf("deleted %d channels, want 5 (voice general is deletable)", result.DeletedChannels)
	}
}

func TestNukeServer_SkipsSystemChannels(t *testing.T) {
	g := nukeFixture()
	g.state.Channels = append(g.state.Channels, GuildChannel{ID: "7", Name: "rules", Type: ChannelText, System: true})
	New(g).NukeServer(context.Background())

	for _, name := range g.deletedChannels {
		if name == "rules" {
			t.Error("system channel was deleted")
		}
	}
}

func TestNukeServer_RoleFilters(t *testing.T) {
	g := nukeFixture()
	result := New(g).NukeServer(context.Background())

	if result.DeletedRoles != 1 {
		t.Errorf("deleted %d roles, want 1", result.DeletedRoles)
	}
	if len(g.deletedRoles) != 1 || g.deletedRoles[0] != "OldRole" {
		t.Errorf("deleted roles = %v, want only OldRole", g.deletedRoles)
	}
}

func TestNukeServer_HighRoleNeverAttempted(t *testing.T) {
	g := nukeFixture()
	// Even when deletion would "succeed", a role above the bot's top position
	// must not appear in the attempt set.
	New(g).NukeServer(context.Background())
	for _, name := range g.deletedRoles {
		if name == "ServerOwner" {
			t.Error("role above bot's highest position was attempted")
		}
	}
}

func TestNukeServer_RecreatesBaseline(t *testing.T) {
	g := nukeFixture()
	result := New(g).NukeServer(context.Background())

	if len(result.BaselineRoles) != 3 {
		t.Fatalf("baseline roles = %d, want 3", len(result.BaselineRoles))
	}
	want := []string{"Member", "Moderator", "Admin"}
	for i, r := range result.BaselineRoles {
		if r.Name != want[i] {
			t.Errorf("baseline[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestNukeServer_BaselineRespectsCeiling(t *testing.T) {
	g := nukeFixture()
	g.state.BotPermissions = discordgo.PermissionSendMessages | discordgo.PermissionViewChannel
	New(g).NukeServer(context.Background())

	for _, rc := range g.createdRoles {
		if rc.Permissions&^(discordgo.PermissionSendMessages|discordgo.PermissionViewChannel) != 0 {
			t.Errorf("baseline role %q granted bits beyond the bot's own: %d", rc.Name, rc.Permissions)
		}
	}
}

func TestNukeServer_PerItemFailuresContinue(t *testing.T) {
	g := nukeFixture()
	g.failDelete["random"] = true
	g.failDelete["OldRole"] = true
	result := New(g).NukeServer(context.Background())

	if result.DeletedChannels != 3 {
		t.Errorf("deleted %d channels, want 3", result.DeletedChannels)
	}
	if result.DeletedRoles != 0 {
		t.Errorf("deleted %d roles, want 0", result.DeletedRoles)
	}
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v, want 2", result.Errors)
	}
	// Baseline creation still ran.
	if len(result.BaselineRoles) != 3 {
		t.Errorf("baseline roles = %d, want 3", len(result.BaselineRoles))
	}
}

func TestNukeServer_SnapshotFailure(t *testing.T) {
	g := nukeFixture()
	g.snapshotErr = errors.New("guild unavailable")
	result := New(g).NukeServer(context.Background())

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Server nuke failed") {
		t.Errorf("errors = %v, want single top-level failure", result.Errors)
	}
}

func TestNukeServer_CustomProtectedChannel(t *testing.T) {
	g := nukeFixture()
	b := New(g, WithProtectedChannel("lobby"))
	g.state.Channels = append(g.state.Channels, GuildChannel{ID: "8", Name: "lobby", Type: ChannelText})
	b.NukeServer(context.Background())

	for _, name := range g.deletedChannels {
		if name == "lobby" {
			t.Error("custom protected channel was deleted")
		}
	}
	// With a custom protected name, "general" becomes deletable.
	found := false
	for _, name := range g.deletedChannels {
		if name == "general" {
			found = true
		}
	}
	if !found {
		t.Error("general should be deletable when protection is moved to lobby")
	}
}
