package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"duet/config"
	"duet/conversation"
	"duet/gate"
	"duet/model"
	"duet/provider"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

// options holds the flag values of one command tree.
type options struct {
	verbose    bool
	configPath string

	modelA        string
	modelB        string
	exchanges     int
	supervised    bool
	transcriptDir string
	seedPath      string
	ping          bool
}

// newBackends builds the backends for a run; tests replace it with mocks.
var newBackends = func(cfg *config.Config, log logrus.FieldLogger) (map[provider.Family]model.Backend, error) {
	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return provider.InitializeBackends(cfg, creds, log), nil
}

// NewRootCmd builds the duet command tree. Without a subcommand it runs a
// conversation.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "duet",
		Short: "Let two language models talk to each other",
		Long: `duet alternates turns between two conversational models, feeding each
one's reply to the other, and writes every turn to conversation_<unix>.txt.

Model A speaks first and starts from the seed history; model B starts empty.
Supported identifiers:
  claude-*                         Anthropic (ANTHROPIC_API_KEY)
  gpt-*, chatgpt-*, o1*, o3*, o4*  OpenAI (OPENAI_API_KEY)
  openrouter/<vendor>/<model>      OpenRouter (OPENROUTER_API_KEY)
  ollama/<model>                   local Ollama server (OLLAMA_HOST)

Quick Start:
  duet                                    # gpt-4 and claude-3-opus, 5 rounds
  duet --model-a ollama/llama3.1 -n 3     # pick models and round count
  duet --supervised                       # press 'r' to regenerate a turn`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversation(cmd, opts)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (default ~/.config/duet/settings.toml)")

	root.Flags().StringVar(&opts.modelA, "model-a", "", "Model that speaks first and receives the seed")
	root.Flags().StringVar(&opts.modelB, "model-b", "", "Model that answers")
	root.Flags().IntVarP(&opts.exchanges, "exchanges", "n", 0, "Number of rounds (one turn from each model)")
	root.Flags().BoolVar(&opts.supervised, "supervised", false, "Confirm each turn; press 'r' to retry it")
	root.Flags().StringVar(&opts.transcriptDir, "transcript-dir", "", "Directory for the transcript file")
	root.Flags().StringVar(&opts.seedPath, "seed", "", "TOML seed history for model A")

	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newModelsCmd(opts), newInitCmd(opts))
	return root
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers .env, the settings file, DUET_* variables and any flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model-a") {
		cfg.ModelA = opts.modelA
	}
	if flags.Changed("model-b") {
		cfg.ModelB = opts.modelB
	}
	if flags.Changed("exchanges") {
		cfg.Exchanges = opts.exchanges
	}
	if flags.Changed("supervised") {
		cfg.Supervised = opts.supervised
	}
	if flags.Changed("transcript-dir") {
		cfg.TranscriptDir = opts.transcriptDir
	}
	if flags.Changed("seed") {
		cfg.SeedFile = opts.seedPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	config.InitDebugLog(cfg.DataDir(), opts.verbose)
	return cfg, nil
}

func runConversation(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log := config.DebugLog

	// Fail before the transcript exists if either identifier can't be routed
	for _, id := range []string{cfg.ModelA, cfg.ModelB} {
		if _, err := provider.Resolve(id); err != nil {
			return err
		}
	}

	seed, err := config.LoadSeed(cfg.SeedPath())
	if err != nil {
		return err
	}

	backends, err := newBackends(cfg, log)
	if err != nil {
		return err
	}

	invoker := provider.NewInvoker(backends, provider.InvokerConfig{
		MaxTokens: cfg.MaxTokens,
		Policy: provider.Policy{
			Timeout:     cfg.Invoke.Timeout,
			MaxAttempts: cfg.Invoke.MaxAttempts,
			Backoff:     cfg.Invoke.Backoff,
		},
		Logger: log,
	})

	out := cmd.OutOrStdout()
	var g gate.Gate
	if cfg.Supervised {
		g = gate.NewTerminalGate(os.Stdin, out)
	}

	console := conversation.NewConsole(out)
	orch := conversation.New(invoker, g, conversation.Options{
		TranscriptDir: cfg.TranscriptPath(),
		Console:       console,
		Logger:        log,
	})

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := conversation.NewParticipant(cfg.ModelA, seed)
	b := conversation.NewParticipant(cfg.ModelB, nil)

	res, err := orch.Run(ctx, a, b, cfg.Exchanges, cfg.Supervised)
	if err != nil {
		if res != nil && res.TranscriptPath != "" {
			printTranscriptHint(cmd.ErrOrStderr(), res.TranscriptPath)
		}
		return err
	}

	console.Finished(res)
	return nil
}

// loadDotEnv loads ./.env if present. Variables already set in the
// environment take precedence.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printTranscriptHint(w io.Writer, path string) {
	fmt.Fprintf(w, "Partial transcript kept at %s\n", path)
}
