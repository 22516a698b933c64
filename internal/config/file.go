package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// RunFile is a saved set of run options. Empty fields leave the environment
// value untouched.
type RunFile struct {
	Periods       []string `json:"periods" yaml:"periods" toml:"periods"`
	Settlement    string   `json:"settlement" yaml:"settlement" toml:"settlement"`
	Role          string   `json:"role" yaml:"role" toml:"role"`
	SellerName    string   `json:"seller_name" yaml:"seller_name" toml:"seller_name"`
	SellerLevel   string   `json:"seller_level" yaml:"seller_level" toml:"seller_level"`
	GPColumn      string   `json:"gp_column" yaml:"gp_column" toml:"gp_column"`
	PayDateColumn string   `json:"pay_date_column" yaml:"pay_date_column" toml:"pay_date_column"`
	DebugCode     string   `json:"debug_code" yaml:"debug_code" toml:"debug_code"`
	SheetsBackend string   `json:"sheets_backend" yaml:"sheets_backend" toml:"sheets_backend"`
	WorkbookDir   string   `json:"workbook_dir" yaml:"workbook_dir" toml:"workbook_dir"`
	DBDriver      string   `json:"db_driver" yaml:"db_driver" toml:"db_driver"`
	SQLiteDBPath  string   `json:"sqlite_db_path" yaml:"sqlite_db_path" toml:"sqlite_db_path"`
	CacheSize     int      `json:"date_lookup_cache_size" yaml:"date_lookup_cache_size" toml:"date_lookup_cache_size"`
}

// LoadFile reads a TOML, YAML or JSON run file, picked by extension.
func LoadFile(path string) (*RunFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var rf RunFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}
	return &rf, nil
}

// Apply overlays the non-empty fields of rf onto c.
func (rf *RunFile) Apply(c *Config) {
	if len(rf.Periods) > 0 {
		c.CommissionPeriods = strings.Join(rf.Periods, ",")
	}
	set(&c.SettlementPeriod, rf.Settlement)
	set(&c.TargetRole, rf.Role)
	set(&c.SellerName, rf.SellerName)
	set(&c.SellerLevel, rf.SellerLevel)
	set(&c.GPColumn, rf.GPColumn)
	set(&c.PayDateColumn, rf.PayDateColumn)
	set(&c.DebugCode, strings.TrimSpace(rf.DebugCode))
	set(&c.SheetsBackend, rf.SheetsBackend)
	set(&c.WorkbookDir, rf.WorkbookDir)
	set(&c.DBDriver, rf.DBDriver)
	set(&c.SQLiteDBPath, rf.SQLiteDBPath)
	if rf.CacheSize != 0 {
		c.DateLookupCacheSize = rf.CacheSize
	}
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
