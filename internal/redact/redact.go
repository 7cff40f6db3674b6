// Package redact sanitizes user-supplied theme text before it is embedded in
// an LLM prompt or echoed back into a reply.
package redact

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// maxThemeRunes matches the slash-command option length limit.
const maxThemeRunes = 300

// patterns holds secret-detection regexes in priority order.
var patterns = []*regexp.Regexp{
	// Discord bot tokens (three dot-separated base64 segments, first encodes the bot ID)
	regexp.MustCompile(`[A-Za-z\d]{23,28}\.[A-Za-z\d_-]{6,7}\.[A-Za-z\d_-]{27,}`),
	// OpenAI / Anthropic / OpenRouter secret keys, word-boundary aware
	regexp.MustCompile(`(?:^|\s|["'])sk-[a-zA-Z0-9_-]{20,}`),
	// Bearer tokens, minimum 20-char token to avoid false positives
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]{20,}=*`),
}

// massMention matches @everyone/@here pings so a theme echoed into a reply
// cannot ping the whole guild.
var massMention = regexp.MustCompile(`@(everyone|here)`)

// mentionBreak is a zero-width space inserted after the @ so the mention no
// longer parses but the words stay readable.
const mentionBreak = "@​$1"

// Theme sanitizes a raw theme string: secrets are replaced with [REDACTED],
// mass mentions are defused, whitespace is collapsed, and the result is
// capped at the slash-option length limit.
func Theme(input string) string {
	for _, re := range patterns {
		input = re.ReplaceAllString(input, redacted)
	}
	input = massMention.ReplaceAllString(input, mentionBreak)

	input = strings.Join(strings.Fields(input), " ")

	r := []rune(input)
	if len(r) > maxThemeRunes {
		input = string(r[:maxThemeRunes])
	}
	return input
}
