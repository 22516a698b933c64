package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"comissoes/internal/backend"
	"comissoes/internal/cli"
	"comissoes/internal/commission"
	"comissoes/internal/config"
	"comissoes/internal/core"
	"comissoes/internal/log"
	"comissoes/internal/report"
)

type reportOptions struct {
	periods       string
	settlement    string
	role          string
	seller        string
	level         string
	debugCode     string
	gpColumn      string
	payDateColumn string
	sheetsBackend string
	dbDriver      string
	cacheSize     int
}

func newReportCommand(global *globalOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute commissions per person and creation period",
		Long: `Reads the levels, roster and settled transactions sheets, resolves the
creation and settlement date of every transaction and prints, per person and
creation period, the matched transactions and their commission.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig(global.runFile, func(c *config.Config) {
				applyReportFlags(cmd, opts, global, c)
			})
			if err != nil {
				return err
			}
			return runReport(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.periods, "periods", "", "creation periods, comma separated YYYY-MM (COMMISSION_PERIODS)")
	f.StringVar(&opts.settlement, "settlement", "", "settlement period YYYY-MM (SETTLEMENT_PERIOD)")
	f.StringVar(&opts.role, "role", "", "role column and roster filter (TARGET_ROLE)")
	f.StringVar(&opts.seller, "seller", "", "report a single seller by name, skipping the roster sheet")
	f.StringVar(&opts.level, "level", "", "level of --seller")
	f.StringVar(&opts.debugCode, "debug-code", "", "trace a single transaction code")
	f.StringVar(&opts.gpColumn, "gp-column", "", "gross profit column (GP_COLUMN)")
	f.StringVar(&opts.payDateColumn, "pay-date-column", "", "sheet column overriding the settlement date")
	f.StringVar(&opts.sheetsBackend, "sheets-backend", "", "google or xlsx (SHEETS_BACKEND)")
	f.StringVar(&opts.dbDriver, "db-driver", "", "mysql or sqlite (DB_DRIVER)")
	f.IntVar(&opts.cacheSize, "cache-size", 0, "memoize date lookups for up to N codes")

	return cmd
}

// applyReportFlags overlays only the flags set on the command line.
func applyReportFlags(cmd *cobra.Command, opts *reportOptions, global *globalOptions, c *config.Config) {
	changed := cmd.Flags().Changed
	if changed("periods") {
		c.CommissionPeriods = opts.periods
	}
	if changed("settlement") {
		c.SettlementPeriod = opts.settlement
	}
	if changed("role") {
		c.TargetRole = opts.role
	}
	if changed("seller") {
		c.SellerName = opts.seller
	}
	if changed("level") {
		c.SellerLevel = opts.level
	}
	if changed("debug-code") {
		c.DebugCode = strings.TrimSpace(opts.debugCode)
	}
	if changed("gp-column") {
		c.GPColumn = opts.gpColumn
	}
	if changed("pay-date-column") {
		c.PayDateColumn = opts.payDateColumn
	}
	if changed("sheets-backend") {
		c.SheetsBackend = opts.sheetsBackend
	}
	if changed("db-driver") {
		c.DBDriver = opts.dbDriver
	}
	if changed("cache-size") {
		c.DateLookupCacheSize = opts.cacheSize
	}
	if global.logLevel != "" {
		c.LogLevel = global.logLevel
	}
}

func runReport(cmd *cobra.Command, cfg *config.Config) error {
	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	logger := cli.SetupLogger(cfg.LogLevel, cmd.ErrOrStderr())
	ctx = log.NewContext(ctx, logger)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Cleanup failed", log.FieldError, err)
		}
	}()

	params, err := runParams(cfg)
	if err != nil {
		return err
	}

	rep, err := commission.NewRunner(res.Tables, res.Dates, logger).Run(ctx, params)
	if err != nil {
		return err
	}
	if err := report.NewRenderer().Render(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// runParams translates validated configuration into run parameters.
func runParams(cfg *config.Config) (commission.Params, error) {
	periods, err := core.ParsePeriods(cfg.CommissionPeriods)
	if err != nil {
		return commission.Params{}, err
	}
	settlement, err := core.ParsePeriod(cfg.SettlementPeriod)
	if err != nil {
		return commission.Params{}, err
	}

	p := commission.Params{
		Sources: commission.Sources{
			ParamSpreadsheet:        cfg.ParamSpreadsheetID,
			TransactionsSpreadsheet: cfg.OperationsSpreadsheetID,
			LevelsSheet:             cfg.LevelsGID,
			RosterSheet:             cfg.RosterGID,
			TransactionsSheet:       cfg.OperationsGID,
		},
		Role:             cfg.TargetRole,
		CreationPeriods:  periods,
		SettlementPeriod: settlement,
		GPColumn:         cfg.GPColumn,
		SettlementColumn: cfg.PayDateColumn,
		DebugCode:        cfg.DebugCode,
	}
	if cfg.SellerName != "" {
		p.Seller = &core.Person{Name: cfg.SellerName, Level: cfg.SellerLevel}
	}
	return p, nil
}
