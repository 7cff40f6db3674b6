package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/guildsmith/internal/config"
	"github.com/dshills/guildsmith/internal/discord"
	"github.com/dshills/guildsmith/internal/generate"
	"github.com/dshills/guildsmith/internal/llm"
	"github.com/dshills/guildsmith/internal/plan"
	"github.com/dshills/guildsmith/internal/render"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// previewFlags holds the parsed flags for the preview command.
type previewFlags struct {
	format  string
	out     string
	offline bool
	verbose bool
}

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "guildsmith",
		Short:   "Theme-driven Discord server builder",
		Long:    "Guildsmith turns a free-text theme into a full Discord server layout and applies it to a live guild.",
		Version: version,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (YAML)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot and serve slash commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(configPath)
		},
	}

	var pf previewFlags
	previewCmd := &cobra.Command{
		Use:   "preview <theme>",
		Short: "Generate a server structure for a theme without touching Discord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(configPath, args[0], pf)
		},
	}
	f := previewCmd.Flags()
	f.StringVar(&pf.format, "format", "json", "Output format: json, md, or tree")
	f.StringVar(&pf.out, "out", "", "Write output to file instead of stdout")
	f.BoolVar(&pf.offline, "offline", false, "Skip the LLM and render the deterministic fallback")
	f.BoolVar(&pf.verbose, "verbose", false, "Print generation steps to stderr")

	var guildID string
	planCmd := &cobra.Command{
		Use:   "plan <theme>",
		Short: "Show how a generated structure differs from a live guild, mutating nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(configPath, args[0], guildID)
		},
	}
	planCmd.Flags().StringVar(&guildID, "guild", "", "Guild ID to diff against (required)")
	planCmd.MarkFlagRequired("guild")

	root.AddCommand(runCmd, previewCmd, planCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func runBot(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	if cfg.Token == "" {
		return codeError(3, "discord token not set (config token or DISCORD_TOKEN)")
	}

	log, err := zap.NewProduction()
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}
	defer log.Sync()

	provider, err := llm.NewProvider(cfg.Model)
	if err != nil {
		return codeError(4, "creating LLM provider: %s", err)
	}
	gen := generate.New(provider, generatorOptions(cfg, log))

	bot, err := discord.NewBot(cfg, gen, log)
	if err != nil {
		return codeError(5, "creating bot: %s", err)
	}
	if err := bot.Start(); err != nil {
		return codeError(5, "starting bot: %s", err)
	}
	log.Info("bot running", zap.String("model", cfg.Model), zap.String("version", version))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	return bot.Close()
}

func runPreview(configPath, theme string, flags previewFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return codeError(3, "invalid flags: %s", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}

	log := zap.NewNop()
	if flags.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return codeError(3, "creating logger: %s", err)
		}
		defer log.Sync()
	}

	var provider llm.Provider
	if flags.offline {
		provider = offlineProvider{}
	} else {
		if provider, err = llm.NewProvider(cfg.Model); err != nil {
			return codeError(4, "creating LLM provider: %s", err)
		}
	}
	gen := generate.New(provider, generatorOptions(cfg, log))

	structure := gen.Generate(context.Background(), theme)

	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(structure)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}

	if flags.out != "" {
		if err := os.WriteFile(flags.out, outputBytes, 0o644); err != nil {
			return codeError(3, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(outputBytes); err != nil {
		return codeError(3, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(outputBytes) > 0 && outputBytes[len(outputBytes)-1] != '\n' {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func runPlan(configPath, theme, guildID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}
	if cfg.Token == "" {
		return codeError(3, "discord token not set (config token or DISCORD_TOKEN)")
	}

	provider, err := llm.NewProvider(cfg.Model)
	if err != nil {
		return codeError(4, "creating LLM provider: %s", err)
	}
	gen := generate.New(provider, generatorOptions(cfg, zap.NewNop()))

	ctx := context.Background()
	state, err := discord.Snapshot(ctx, cfg.Token, guildID)
	if err != nil {
		return codeError(5, "fetching guild state: %s", err)
	}

	structure := gen.Generate(ctx, theme)

	diff := plan.Diff(plan.LayoutText(state), plan.ProposalText(structure))
	if diff == "" {
		fmt.Println("Guild already matches the proposed layout.")
		return nil
	}
	fmt.Print(diff)
	return nil
}

// generatorOptions maps config values onto generator options.
func generatorOptions(cfg *config.Config, log *zap.Logger) generate.Options {
	return generate.Options{
		ChannelCap:   cfg.ChannelCap,
		VoiceMin:     cfg.VoiceMin,
		VoiceMax:     cfg.VoiceMax,
		Randomize:    cfg.VoiceRandomize,
		EnhanceModel: cfg.EnhanceModel,
		Log:          log,
	}
}

// validateFormat returns an error if the format flag value is invalid.
func validateFormat(format string) error {
	switch format {
	case "json", "md", "tree":
		return nil
	default:
		return fmt.Errorf("--format must be json, md, or tree, got %q", format)
	}
}

// offlineProvider always fails, forcing the generator down its fallback path.
// Used by preview --offline so no network or API key is needed.
type offlineProvider struct{}

func (offlineProvider) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return nil, fmt.Errorf("offline mode: no LLM provider")
}
