package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mgriffin78/maas/internal/maas"
)

// Inventory is the slice of a MaaS session the report run needs.
type Inventory interface {
	ListMachines(ctx context.Context) ([]maas.Machine, error)
}

// Config configures one report run.
type Config struct {
	Inventory Inventory
	Format    Format
	// Stdout receives the report itself.
	Stdout io.Writer
	// Progress receives the human progress lines. Defaults to Stdout;
	// callers emitting machine-readable reports point it elsewhere so the
	// report stream stays clean.
	Progress io.Writer
}

// Run fetches the full inventory, classifies it, and writes the report.
// A fetch failure aborts before any report output is produced.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Inventory == nil {
		return errors.New("inventory source is required")
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Progress == nil {
		cfg.Progress = cfg.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	fmt.Fprintln(cfg.Progress, "--> Fetching all machines from MaaS... (This might take a moment on large systems)")
	machines, err := cfg.Inventory.ListMachines(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cfg.Progress, "--> Found %d total machines.\n", len(machines))

	if err := Write(cfg.Stdout, Classify(machines), cfg.Format); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	fmt.Fprintln(cfg.Progress, "--> Report generation complete.")
	return nil
}
