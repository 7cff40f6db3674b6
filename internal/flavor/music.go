package flavor

func music() *Flavor {
	return &Flavor{
		Name:       "music",
		Keywords:   []string{"music", "band", "producer", "dj", "hip-hop", "beat"},
		ChatEmoji:  "🎵",
		VoiceEmoji: "🎤",
		ShowEmoji:  "🎹",
		RolePrefix: "Artist",
	}
}
