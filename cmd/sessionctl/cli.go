package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"spendly/internal/session/repository"
)

// OpenFunc opens the session store, optionally overriding the driver.
type OpenFunc func(ctx context.Context, driver string) (repository.Repository, func(), error)

var (
	errListUnsupported  = errors.New("this session driver cannot list ids")
	errPurgeUnsupported = errors.New("this session driver cannot purge; rely on its own expiry")
)

// App holds the sessionctl flags and collaborators.
type App struct {
	Out  io.Writer
	Open OpenFunc

	driver    string
	olderThan time.Duration
	dryRun    bool
}

// CreateRootCommand creates and configures the root command.
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sessionctl",
		Short: "Inspect and prune Spendly sessions",
		Long: `sessionctl works on the session store configured for the API server
(config.yaml or environment). The API never deletes sessions itself; run
"sessionctl purge" from cron to enforce retention.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&app.driver, "driver", "", "Override session.driver (file, sqlite, postgres, redis)")

	rootCmd.AddCommand(app.showCommand(), app.listCommand(), app.purgeCommand())
	return rootCmd
}

func (app *App) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a stored session document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := app.Open(cmd.Context(), app.driver)
			if err != nil {
				return err
			}
			defer closeFn()

			sess, err := repo.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			enc := json.NewEncoder(app.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(sess)
		},
	}
}

func (app *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored session ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeFn, err := app.Open(cmd.Context(), app.driver)
			if err != nil {
				return err
			}
			defer closeFn()

			lister, ok := repo.(repository.Lister)
			if !ok {
				return errListUnsupported
			}
			ids, err := lister.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintln(app.Out, id)
			}
			return nil
		},
	}
}

func (app *App) purgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete sessions not written within --older-than",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", app.olderThan)
			}
			cutoff := time.Now().Add(-app.olderThan)

			if app.dryRun {
				fmt.Fprintf(app.Out, "would purge sessions last written before %s\n", cutoff.Format(time.RFC3339))
				return nil
			}

			repo, closeFn, err := app.Open(cmd.Context(), app.driver)
			if err != nil {
				return err
			}
			defer closeFn()

			purger, ok := repo.(repository.Purger)
			if !ok {
				return errPurgeUnsupported
			}
			n, err := purger.Purge(cmd.Context(), cutoff)
			if err != nil {
				return fmt.Errorf("purge: %w", err)
			}
			fmt.Fprintf(app.Out, "purged %d session(s) last written before %s\n", n, cutoff.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().DurationVar(&app.olderThan, "older-than", 30*24*time.Hour, "Age threshold, e.g. 720h")
	cmd.Flags().BoolVar(&app.dryRun, "dry-run", false, "Print the cutoff without deleting")
	return cmd
}
