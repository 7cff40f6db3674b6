// Package config holds runtime configuration for the bot, loaded from an
// optional YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains configuration variables for the bot and the generation
// pipeline.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `yaml:"token"`

	// AppID is the Discord application ID slash commands register under.
	AppID string `yaml:"app_id"`

	// Model selects the structure-generation model as "provider:model",
	// e.g. "openrouter:anthropic/claude-3.5-haiku".
	Model string `yaml:"model"`

	// EnhanceModel is the cheap model used for theme enhancement; empty
	// means the main model. Passed through to the provider as-is.
	EnhanceModel string `yaml:"enhance_model"`

	// ChannelCap is the maximum total channel count per generated structure.
	ChannelCap int `yaml:"channel_cap"`

	// VoiceMin and VoiceMax bound the voice channel count. When
	// VoiceRandomize is set the per-generation target is drawn uniformly
	// from [VoiceMin, VoiceMax], otherwise VoiceMax acts as a hard ceiling.
	VoiceMin       int  `yaml:"voice_min"`
	VoiceMax       int  `yaml:"voice_max"`
	VoiceRandomize bool `yaml:"voice_randomize"`

	// ProtectedChannel is the text channel the nuke flow never deletes.
	ProtectedChannel string `yaml:"protected_channel"`

	// CooldownSeconds is the per-user wait between build/nuke commands.
	CooldownSeconds int `yaml:"cooldown_seconds"`
}

// NewConfig returns a Config with default settings. Token and AppID are
// empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Model:            "openrouter:anthropic/claude-3.5-haiku",
		EnhanceModel:     "openai/gpt-3.5-turbo",
		ChannelCap:       20,
		VoiceMin:         1,
		VoiceMax:         3,
		VoiceRandomize:   true,
		ProtectedChannel: "general",
		CooldownSeconds:  60,
	}
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. A missing path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("DISCORD_APP_ID"); v != "" {
		c.AppID = v
	}
	if v := os.Getenv("GUILDSMITH_MODEL"); v != "" {
		c.Model = v
	}
}

// Validate returns an error when any value is out of range.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must be set")
	}
	if c.ChannelCap <= 0 {
		return fmt.Errorf("channel_cap must be > 0, got %d", c.ChannelCap)
	}
	if c.VoiceMin < 1 {
		return fmt.Errorf("voice_min must be >= 1, got %d", c.VoiceMin)
	}
	if c.VoiceMax < c.VoiceMin {
		return fmt.Errorf("voice_max %d must be >= voice_min %d", c.VoiceMax, c.VoiceMin)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("cooldown_seconds must be >= 0, got %d", c.CooldownSeconds)
	}
	return nil
}
