package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/gridlog/internal/config"
	"github.com/faizmokh/gridlog/internal/store"
	"github.com/faizmokh/gridlog/internal/ui"
	"github.com/faizmokh/gridlog/internal/version"
)

// NewRootCommand creates the Cobra command hosting the single full-screen
// session. There are no subcommands and no flags; cobra supplies version
// output and error funneling.
func NewRootCommand(st *store.Store, cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gridlog",
		Short:   "Record time-tracking entries in a terminal grid and export them to CSV.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(cfg, st)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run session: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return cmd
}

// ExecuteCommand wires the storage and config collaborators and executes the
// root command. Failing to set up either is the only unrecoverable startup
// path; everything later degrades to status messages inside the session.
func ExecuteCommand(ctx context.Context) error {
	st, err := store.New("")
	if err != nil {
		return err
	}
	cfg, err := config.Load(st.BasePath())
	if err != nil {
		return err
	}
	cmd := NewRootCommand(st, cfg)
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/gridlog/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
