package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("debug", &buf)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("COMISSOES_TEST_KEY=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMISSOES_TEST_KEY", "")
	os.Unsetenv("COMISSOES_TEST_KEY")

	LoadEnvFile(path)
	if got := os.Getenv("COMISSOES_TEST_KEY"); got != "from-file" {
		t.Fatalf("expected value from env file, got %q", got)
	}

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("GSHEETS_PARAM_KEY", "param")
	t.Setenv("GSHEETS_SPREADSHEET_KEY", "atlantis")
	t.Setenv("SHEETS_BACKEND", "xlsx")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("COMMISSION_PERIODS", "")
	t.Setenv("TEST_COMPETENCIAS", "")
	t.Setenv("SETTLEMENT_PERIOD", "")
	t.Setenv("TEST_PAY_YYYYMM", "")
	t.Setenv("LOG_LEVEL", "")

	if _, err := LoadAndValidateConfig(""); err == nil || !strings.Contains(err.Error(), "COMMISSION_PERIODS is required") {
		t.Fatalf("expected validation error, got %v", err)
	}

	runFile := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(runFile, []byte("periods: [\"2025-08\"]\nsettlement: \"2025-12\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadAndValidateConfig(runFile)
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.CommissionPeriods != "2025-08" || cfg.SettlementPeriod != "2025-12" {
		t.Errorf("run file not applied: %+v", cfg)
	}
}

func TestSignalContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := SignalContext(parent)
	defer stop()
	cancel()
	<-ctx.Done()
}
