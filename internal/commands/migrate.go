package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"comissoes/internal/cli"
	"comissoes/internal/config"
	"comissoes/internal/storage"
)

func newMigrateCommand(global *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the local SQLite shipment database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveSQLitePath(cmd, dbPath)
			logger := cli.SetupLogger(global.logLevel, cmd.ErrOrStderr())

			version, err := storage.RunMigrations(path)
			if err != nil {
				return err
			}
			logger.Info("Migrations applied", "db_path", path, "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "%s at schema version %d\n", path, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (SQLITE_DB_PATH)")
	return cmd
}

func resolveSQLitePath(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("db") {
		return flagValue
	}
	return config.Load().SQLiteDBPath
}
