package cli

import (
	"testing"

	"github.com/faizmokh/gridlog/internal/config"
	"github.com/faizmokh/gridlog/internal/store"
)

func TestRootCommandHasNoSubcommands(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	cmd := NewRootCommand(st, config.Default())
	if cmd.HasSubCommands() {
		t.Fatalf("root command must host a single session, found subcommands")
	}
	if cmd.Use != "gridlog" {
		t.Fatalf("Use = %q, want %q", cmd.Use, "gridlog")
	}
	if cmd.Version == "" {
		t.Fatalf("version metadata missing")
	}
}
