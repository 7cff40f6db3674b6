// Package generate turns a free-text theme into a validated, bounded server
// structure. The pipeline is total: on any failure it degrades to a
// deterministic fallback rather than returning an error.
package generate

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/llm"
	"github.com/dshills/guildsmith/internal/redact"
	"github.com/dshills/guildsmith/internal/schema"
	"github.com/dshills/guildsmith/internal/schema/validate"
)

// Generation call parameters, matching the original tuning.
const (
	structureTemperature = 0.7
	structureMaxTokens   = 1800
	enhanceTemperature   = 0.3
	enhanceMaxTokens     = 150
)

// Options configures a Generator. Zero values fall back to defaults.
type Options struct {
	// ChannelCap is the maximum total channel count (default 20).
	ChannelCap int
	// VoiceMin is the minimum voice channel count (default 1).
	VoiceMin int
	// VoiceMax is the upper bound on voice channels (default 3).
	VoiceMax int
	// Randomize draws the voice target uniformly from [VoiceMin, VoiceMax]
	// per generation instead of always using VoiceMax.
	Randomize bool
	// EnhanceModel overrides the provider's model for the cheap
	// theme-enhancement call (e.g. "openai/gpt-3.5-turbo").
	EnhanceModel string
	// Rand is the source for the randomized voice target. Defaults to the
	// global source; inject a seeded one in tests.
	Rand *rand.Rand
	// Log receives fallback and trim events. Defaults to a no-op logger.
	Log *zap.Logger
}

// Generator produces server structures from themes.
type Generator struct {
	provider llm.Provider
	opts     Options
	log      *zap.Logger
}

// New returns a Generator using the given completion provider.
func New(provider llm.Provider, opts Options) *Generator {
	if opts.ChannelCap <= 0 {
		opts.ChannelCap = 20
	}
	if opts.VoiceMin <= 0 {
		opts.VoiceMin = 1
	}
	if opts.VoiceMax < opts.VoiceMin {
		opts.VoiceMax = opts.VoiceMin + 2
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{provider: provider, opts: opts, log: log}
}

// Generate returns a structure for the theme. It never fails outward: any
// transport, parse, or validation error yields the deterministic fallback,
// and every returned structure satisfies the configured limits.
func (g *Generator) Generate(ctx context.Context, theme string) *schema.ServerStructure {
	theme = redact.Theme(theme)
	limits := g.limits()

	enhanced := g.Enhance(ctx, theme)

	resp, err := g.provider.Complete(ctx, &llm.Request{
		UserPrompt:  llm.BuildStructurePrompt(enhanced, g.opts.ChannelCap, g.opts.VoiceMin, g.opts.VoiceMax),
		Temperature: structureTemperature,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		g.log.Warn("structure generation failed, using fallback", zap.Error(err))
		return g.fallbackWithLimits(theme, limits)
	}

	s, err := validate.Parse(resp.Content)
	if err != nil {
		g.log.Warn("model output rejected, using fallback",
			zap.String("model", resp.Model), zap.Error(err))
		return g.fallbackWithLimits(theme, limits)
	}

	validate.EnforceLimits(s, limits)
	g.log.Info("structure generated",
		zap.String("model", resp.Model),
		zap.Int("categories", len(s.Categories)),
		zap.Int("channels", s.ChannelCount()),
		zap.Int("voice", s.VoiceCount()),
		zap.Int("roles", len(s.Roles)))
	return s
}

// Enhance rewrites the theme into a more specific description via a cheap
// secondary completion. Best-effort: on any failure the original theme is
// returned unchanged, never an error.
func (g *Generator) Enhance(ctx context.Context, theme string) string {
	resp, err := g.provider.Complete(ctx, &llm.Request{
		UserPrompt:  llm.BuildEnhancePrompt(theme),
		Temperature: enhanceTemperature,
		MaxTokens:   enhanceMaxTokens,
		Model:       g.opts.EnhanceModel,
	})
	if err != nil {
		g.log.Debug("theme enhancement failed, using original", zap.Error(err))
		return theme
	}
	return llm.CleanEnhanced(resp.Content, theme)
}

// limits freezes the per-generation limits, drawing the voice target when
// randomization is on.
func (g *Generator) limits() validate.Limits {
	target := g.opts.VoiceMax
	if g.opts.Randomize {
		span := g.opts.VoiceMax - g.opts.VoiceMin + 1
		if g.opts.Rand != nil {
			target = g.opts.VoiceMin + g.opts.Rand.Intn(span)
		} else {
			target = g.opts.VoiceMin + rand.Intn(span)
		}
	}
	return validate.Limits{
		ChannelCap:  g.opts.ChannelCap,
		VoiceMin:    g.opts.VoiceMin,
		VoiceTarget: target,
	}
}

// fallbackWithLimits runs the fallback through the same trim pass so the
// Generate postconditions hold on every path.
func (g *Generator) fallbackWithLimits(theme string, limits validate.Limits) *schema.ServerStructure {
	s := Fallback(theme)
	validate.EnforceLimits(s, limits)
	return s
}
