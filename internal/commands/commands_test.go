package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"comissoes/internal/storage"
)

func init() {
	pterm.DisableStyling()
	color.NoColor = true
}

func runComissoes(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeWorkbook(t *testing.T, path string, tabs map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range tabs {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GSHEETS_NIVEIS_GID", "GSHEETS_META_COLABORADOR_GID", "GSHEETS_OPERACOES_GID",
		"COMMISSION_PERIODS", "TEST_COMPETENCIAS", "SETTLEMENT_PERIOD", "TEST_PAY_YYYYMM",
		"TARGET_ROLE", "SELLER_NAME", "SELLER_LEVEL", "GP_COLUMN", "PAY_DATE_COLUMN", "DEBUG_CODE",
		"DATE_LOOKUP_CACHE_SIZE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// offlineFixture prepares workbooks and a SQLite shipment table and points
// the environment at them.
func offlineFixture(t *testing.T) string {
	t.Helper()
	clearEnv(t)
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, "param.xlsx"), map[string][][]any{
		"1124232309": {
			{"Niveis", "Sales Executive"},
			{"Guardiao", "50%"},
		},
		"873121416": {
			{"Colaborador", "Email", "Função", "Nível"},
			{"Ana Souza", "ana@audaz.com", "Sales Executive", "Guardião"},
		},
	})
	writeWorkbook(t, filepath.Join(dir, "atlantis.xlsx"), map[string][][]any{
		"1259003990": {
			{"Código", "Vendedor", "Profit Liquido"},
			{"S-1", "Ana Souza", "1.000,00"},
			{"S-2", "Ana Souza", "50,00"},
		},
	})

	dbPath := filepath.Join(dir, "shipments.db")
	repo, err := storage.OpenSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	created := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	settled := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertShipment(context.Background(), "S-1", &created, &settled))
	require.NoError(t, repo.Close())

	t.Setenv("GSHEETS_PARAM_KEY", "param")
	t.Setenv("GSHEETS_SPREADSHEET_KEY", "atlantis")
	t.Setenv("SHEETS_BACKEND", "xlsx")
	t.Setenv("WORKBOOK_DIR", dir)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_DB_PATH", dbPath)
	return dir
}

func TestReport_Offline(t *testing.T) {
	offlineFixture(t)

	out, _, err := runComissoes(t, "report", "--periods", "2025-08,2025-09", "--settlement", "2025-12", "--cache-size", "16")
	require.NoError(t, err)

	assert.Contains(t, out, "Ana Souza <ana@audaz.com> | Sales Executive | Nível: Guardião | %: 50%")
	assert.Contains(t, out, "S-1")
	assert.NotContains(t, out, "S-2")
	assert.Contains(t, out, "Ana Souza | Competência 2025-09 | DATE_COMISSION 2025-12\nNenhum processo encontrado com esses filtros.")
	assert.Contains(t, out, "Comissão total geral: 500.00")
}

func TestReport_SingleSellerAndDebug(t *testing.T) {
	offlineFixture(t)

	out, _, err := runComissoes(t, "report",
		"--periods", "2025-08", "--settlement", "2025-12",
		"--seller", "ana", "--level", "guardiao", "--debug-code", "S-1")
	require.NoError(t, err)

	assert.Contains(t, out, `DEBUG_CODE: "S-1"`)
	assert.Contains(t, out, "=> ENTROU NA LISTA")
	assert.Contains(t, out, "Comissão total geral: 500.00")
}

func TestReport_MissingConfiguration(t *testing.T) {
	offlineFixture(t)

	_, _, err := runComissoes(t, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMMISSION_PERIODS is required")
	assert.Contains(t, err.Error(), "SETTLEMENT_PERIOD is required")
}

func TestReport_UnknownLevelFails(t *testing.T) {
	offlineFixture(t)

	_, _, err := runComissoes(t, "report", "--periods", "2025-08", "--settlement", "2025-12", "--seller", "Ana", "--level", "Mestre")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mestre")
}

func TestMigrateAndShipment(t *testing.T) {
	clearEnv(t)
	db := filepath.Join(t.TempDir(), "local.db")

	out, _, err := runComissoes(t, "migrate", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 1")

	out, _, err = runComissoes(t, "shipment", "add", "S-7", "--db", db, "--created", "14/08/2025", "--settled", "2025-12-03")
	require.NoError(t, err)
	assert.Contains(t, out, "shipment S-7 stored")

	out, _, err = runComissoes(t, "shipment", "show", "S-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "created=2025-08-14")
	assert.Contains(t, out, "settled=2025-12-03")

	_, _, err = runComissoes(t, "shipment", "add", "S-8", "--db", db, "--created", "ontem")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runComissoes(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}
