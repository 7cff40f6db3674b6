package flavor

// community is the default flavor when no theme keyword matches.
func community() *Flavor {
	return &Flavor{
		Name:       "community",
		ChatEmoji:  "💬",
		VoiceEmoji: "🎤",
		ShowEmoji:  "🎨",
		RolePrefix: "Member",
	}
}
