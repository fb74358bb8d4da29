package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"duet/config"
	"duet/provider"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	familyStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func newModelsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List supported model families and which ones are configured",
		Long: `List the model families duet can route to, the identifier prefixes
that select them, and whether each one has the credentials it needs.

With --ping every configured backend is contacted once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ping, "ping", false, "Contact each configured backend")
	return cmd
}

func listModels(cmd *cobra.Command, opts *options) error {
	if err := loadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	config.InitDebugLog(cfg.DataDir(), opts.verbose)

	backends, err := newBackends(cfg, config.DebugLog)
	if err != nil {
		return err
	}

	var results []provider.PingResult
	if opts.ping {
		ctx, cancel := context.WithTimeout(contextOf(cmd), 30*time.Second)
		defer cancel()
		results = provider.PingBackends(ctx, backends)
	}

	out := cmd.OutOrStdout()
	for i, f := range provider.Families() {
		_, configured := backends[f]

		status := dimStyle.Render("not configured")
		if configured {
			status = okStyle.Render("configured")
		}
		// PingBackends reports in Families() order
		if results != nil && configured {
			if r := results[i]; r.OK() {
				status = okStyle.Render(fmt.Sprintf("ok (%s)", r.Latency.Round(time.Millisecond)))
			} else {
				status = failStyle.Render(r.Err.Error())
			}
		}

		fmt.Fprintf(out, "%s  %s\n", familyStyle.Render(f.DisplayName()), status)
		fmt.Fprintf(out, "  prefixes: %s\n", strings.Join(provider.Prefixes(f), ", "))
	}
	return nil
}
