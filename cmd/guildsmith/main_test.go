package main

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/config"
	"github.com/dshills/guildsmith/internal/generate"
)

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"json", "md", "tree"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q): %v", format, err)
		}
	}
	if err := validateFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCodeError(t *testing.T) {
	err := codeError(3, "bad value %d", 7)
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatal("codeError should produce an exitErr")
	}
	if ee.code != 3 || ee.msg != "bad value 7" {
		t.Errorf("exitErr = %d %q", ee.code, ee.msg)
	}
}

func TestOfflineProvider_ForcesFallback(t *testing.T) {
	cfg := config.NewConfig()
	gen := generate.New(offlineProvider{}, generatorOptions(cfg, zap.NewNop()))

	s := gen.Generate(context.Background(), "board games")
	if len(s.Categories) == 0 || len(s.Roles) == 0 {
		t.Fatal("offline generation should yield the fallback structure")
	}
	if s.ChannelCount() > cfg.ChannelCap {
		t.Errorf("channel count %d exceeds cap %d", s.ChannelCount(), cfg.ChannelCap)
	}
}

func TestGeneratorOptions_MapsConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ChannelCap = 12
	cfg.VoiceRandomize = false

	opts := generatorOptions(cfg, zap.NewNop())
	if opts.ChannelCap != 12 || opts.Randomize {
		t.Errorf("options not mapped: %+v", opts)
	}
	if opts.EnhanceModel != cfg.EnhanceModel {
		t.Errorf("enhance model = %q", opts.EnhanceModel)
	}
}
