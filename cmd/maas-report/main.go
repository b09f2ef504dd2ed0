package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgriffin78/maas/internal/config"
	"github.com/mgriffin78/maas/internal/maas"
	"github.com/mgriffin78/maas/internal/report"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "maas-report",
		Short: "Report on the status of machines managed by a MaaS controller",
		Long: `maas-report queries a Canonical MaaS controller for its machine inventory
and prints a status report grouping machines into servers available for
allocation, servers flagged by data-center operations (DCOPS-* tags), and
machines in a failed or broken state.

Connection settings come from the environment: MAAS_API_URL and MAAS_API_KEY
are required, MAAS_API_VERSION defaults to 2.0.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Machine-readable formats keep stdout clean for the report;
			// the text format interleaves progress the way operators expect.
			var progress io.Writer = os.Stdout
			if format != report.FormatText {
				progress = os.Stderr
			}

			session, err := maas.Connect(ctx, maas.ConnectArgs{
				BaseURL:    cfg.APIURL,
				APIKey:     cfg.APIKey,
				APIVersion: cfg.APIVersion,
				Stdout:     progress,
			})
			if err != nil {
				return err
			}

			return report.Run(ctx, report.Config{
				Inventory: session,
				Format:    format,
				Stdout:    os.Stdout,
				Progress:  progress,
			})
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(report.FormatText), "Report output format: text, json or yaml")
	return cmd
}
