package llm

import (
	"fmt"
	"strings"

	"github.com/dshills/guildsmith/internal/permission"
)

const structureFormatExample = `{
  "categories": [
    {
      "name": "category-name",
      "channels": [
        {"name": "🎯channel-name", "type": "text"},
        {"name": "🎤voice-name", "type": "voice"}
      ]
    }
  ],
  "roles": [
    {
      "name": "Role Name",
      "color": "#hex",
      "permissions": ["SEND_MESSAGES", "VIEW_CHANNEL"]
    }
  ]
}`

// BuildStructurePrompt constructs the generation prompt for a server layout.
// The cap and voice guidance are stated in the prompt, but compliance is not
// trusted: limits are enforced again after parsing.
func BuildStructurePrompt(theme string, channelCap, voiceMin, voiceMax int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Design a creative Discord server for: %q\n\n", theme))
	sb.WriteString("Create categories, channels, and roles that perfectly match this theme. ")
	sb.WriteString("Be imaginative and specific to the theme.\n\n")

	sb.WriteString("Return a JSON object in exactly this format:\n")
	sb.WriteString(structureFormatExample)
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Limits: %d channels max, %d-%d voice channels. Use emojis. Make it themed and unique!\n", channelCap, voiceMin, voiceMax))

	sb.WriteString("Role permissions must come from this list only: ")
	sb.WriteString(strings.Join(permission.AllowedNames(), ", "))
	sb.WriteString("\n\nReturn JSON only, without prose or markdown fences.")

	return sb.String()
}

// BuildEnhancePrompt constructs the theme-rewrite prompt used by the optional
// enhancement step before generation.
func BuildEnhancePrompt(theme string) string {
	return fmt.Sprintf(`Rewrite this Discord server theme to be more specific and detailed: %q

Make it clear what type of community this is, what activities they do, and what channels they might need.

Examples:
"gaming" → "PC gaming community focused on competitive FPS games, streaming, and tournament participation"
"music" → "hip-hop music production community for beat makers, rappers, and audio engineers to collaborate"
"anime" → "anime discussion community for seasonal anime reviews, manga discussions, and fan art sharing"

Rewrite: %q
Enhanced theme:`, theme, theme)
}

// CleanEnhanced strips the label prefix a model tends to echo back from the
// enhancement prompt. Returns fallback when the cleaned result is empty.
func CleanEnhanced(content, fallback string) string {
	enhanced := strings.TrimSpace(content)
	for _, prefix := range []string{"Enhanced theme:", "Enhanced Theme:", "Rewrite:"} {
		enhanced = strings.TrimSpace(strings.TrimPrefix(enhanced, prefix))
	}
	enhanced = strings.Trim(enhanced, `"`)
	if enhanced == "" {
		return fallback
	}
	return enhanced
}
