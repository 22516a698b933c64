package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	files := map[string]string{
		"run.yaml": "periods: [\"2025-08\", \"2025-09\"]\nsettlement: \"2025-12\"\nseller_name: Danielle\nseller_level: Explorador\ndate_lookup_cache_size: 128\n",
		"run.toml": "periods = [\"2025-08\", \"2025-09\"]\nsettlement = \"2025-12\"\nseller_name = \"Danielle\"\nseller_level = \"Explorador\"\ndate_lookup_cache_size = 128\n",
		"run.json": `{"periods": ["2025-08", "2025-09"], "settlement": "2025-12", "seller_name": "Danielle", "seller_level": "Explorador", "date_lookup_cache_size": 128}`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			rf, err := LoadFile(writeFile(t, name, content))
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			cfg := validConfig()
			rf.Apply(&cfg)

			if cfg.CommissionPeriods != "2025-08,2025-09" || cfg.SettlementPeriod != "2025-12" {
				t.Errorf("periods not applied: %q %q", cfg.CommissionPeriods, cfg.SettlementPeriod)
			}
			if cfg.SellerName != "Danielle" || cfg.SellerLevel != "Explorador" {
				t.Errorf("seller not applied: %q %q", cfg.SellerName, cfg.SellerLevel)
			}
			if cfg.DateLookupCacheSize != 128 {
				t.Errorf("cache size = %d, want 128", cfg.DateLookupCacheSize)
			}
			if cfg.GPColumn != "Profit Liquido" {
				t.Errorf("empty fields must not override, GPColumn = %q", cfg.GPColumn)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(t.TempDir()); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("expected directory error, got %v", err)
	}
	if _, err := LoadFile(writeFile(t, "run.ini", "x=1")); err == nil || !strings.Contains(err.Error(), "unsupported config file format: .ini") {
		t.Errorf("expected format error, got %v", err)
	}
	if _, err := LoadFile(writeFile(t, "run.json", "{")); err == nil || !strings.Contains(err.Error(), "error parsing JSON file") {
		t.Errorf("expected parse error, got %v", err)
	}
}
