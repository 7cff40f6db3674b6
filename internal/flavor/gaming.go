package flavor

func gaming() *Flavor {
	return &Flavor{
		Name:       "gaming",
		Keywords:   []string{"gaming", "game", "esports", "fps", "mmo", "speedrun"},
		ChatEmoji:  "🎮",
		VoiceEmoji: "🎧",
		ShowEmoji:  "🏆",
		RolePrefix: "Player",
	}
}
