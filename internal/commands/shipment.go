package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"comissoes/internal/cli"
	"comissoes/internal/core"
	"comissoes/internal/log"
	"comissoes/internal/storage"
)

func newShipmentCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipment",
		Short: "Maintain the local SQLite shipment table",
	}
	cmd.AddCommand(newShipmentAddCommand(global), newShipmentShowCommand(global))
	return cmd
}

func newShipmentAddCommand(global *globalOptions) *cobra.Command {
	var dbPath, created, settled string

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Record the creation and commission dates of a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createdAt, err := optionalDate("created", created)
			if err != nil {
				return err
			}
			settledAt, err := optionalDate("settled", settled)
			if err != nil {
				return err
			}

			ctx := log.NewContext(cmd.Context(), cli.SetupLogger(global.logLevel, cmd.ErrOrStderr()))
			repo, err := storage.OpenSQLite(ctx, resolveSQLitePath(cmd, dbPath))
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.InsertShipment(ctx, args[0], createdAt, settledAt); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shipment %s stored\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (SQLITE_DB_PATH)")
	cmd.Flags().StringVar(&created, "created", "", "creation date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&settled, "settled", "", "commission date (YYYY-MM-DD or DD/MM/YYYY)")
	return cmd
}

func newShipmentShowCommand(global *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Print the dates a report would use for a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.NewContext(cmd.Context(), cli.SetupLogger(global.logLevel, cmd.ErrOrStderr()))
			repo, err := storage.OpenSQLite(ctx, resolveSQLitePath(cmd, dbPath))
			if err != nil {
				return err
			}
			defer repo.Close()

			d, err := repo.LookupDates(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tcreated=%s\tsettled=%s\n", args[0], dateOrNone(d.CreatedAt), dateOrNone(d.SettledAt))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (SQLITE_DB_PATH)")
	return cmd
}

func optionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, ok := core.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("invalid --%s date %q", name, value)
	}
	return &t, nil
}

func dateOrNone(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format(time.DateOnly)
}
