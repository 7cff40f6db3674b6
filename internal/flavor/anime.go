package flavor

func anime() *Flavor {
	return &Flavor{
		Name:       "anime",
		Keywords:   []string{"anime", "manga", "otaku", "weeb"},
		ChatEmoji:  "🌸",
		VoiceEmoji: "🎙️",
		ShowEmoji:  "🎨",
		RolePrefix: "Fan",
	}
}
