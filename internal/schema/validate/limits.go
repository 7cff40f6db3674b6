package validate

import "github.com/dshills/guildsmith/internal/schema"

// Limits bounds a structure after generation. Model compliance with numeric
// instructions is unreliable, so limits are enforced here rather than trusted
// from the prompt.
type Limits struct {
	// ChannelCap is the maximum total channel count.
	ChannelCap int
	// VoiceMin is the minimum voice channel count. When the structure falls
	// short a synthetic voice channel is appended to the last category.
	VoiceMin int
	// VoiceTarget is the maximum voice channel count for this generation.
	VoiceTarget int
}

// syntheticVoiceChannel is appended when a structure has no voice channels.
var syntheticVoiceChannel = schema.Channel{Name: "🎤general-voice", Kind: schema.KindVoice}

// EnforceLimits trims s in place to satisfy l. Idempotent: a compliant
// structure passes through unchanged.
func EnforceLimits(s *schema.ServerStructure, l Limits) {
	if excess := s.ChannelCount() - l.ChannelCap; excess > 0 && l.ChannelCap > 0 {
		trimChannels(s, excess)
	}

	if excess := s.VoiceCount() - l.VoiceTarget; excess > 0 && l.VoiceTarget > 0 {
		trimVoice(s, excess)
	}

	if s.VoiceCount() < l.VoiceMin && len(s.Categories) > 0 {
		last := &s.Categories[len(s.Categories)-1]
		last.Channels = append(last.Channels, syntheticVoiceChannel)
	}
}

// trimChannels removes n channels from the end of each category's list,
// starting from the last category. Every category keeps at least its first
// channel (or stays empty if it had none).
func trimChannels(s *schema.ServerStructure, n int) {
	for i := len(s.Categories) - 1; i >= 0 && n > 0; i-- {
		c := &s.Categories[i]
		removable := len(c.Channels) - 1
		if removable <= 0 {
			continue
		}
		if removable > n {
			removable = n
		}
		c.Channels = c.Channels[:len(c.Channels)-removable]
		n -= removable
	}
}

// trimVoice removes n voice channels, scanning categories in order and each
// category's channel list from the end.
func trimVoice(s *schema.ServerStructure, n int) {
	for i := range s.Categories {
		if n <= 0 {
			return
		}
		c := &s.Categories[i]
		for j := len(c.Channels) - 1; j >= 0 && n > 0; j-- {
			if c.Channels[j].Kind != schema.KindVoice {
				continue
			}
			c.Channels = append(c.Channels[:j], c.Channels[j+1:]...)
			n--
		}
	}
}
