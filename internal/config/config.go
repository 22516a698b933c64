package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"comissoes/internal/core"
)

type Config struct {
	// Google Sheets
	ParamSpreadsheetID      string
	OperationsSpreadsheetID string
	LevelsGID               int64
	RosterGID               int64
	OperationsGID           int64
	SheetsBackend           string
	WorkbookDir             string
	CredentialsJSONContent  string
	CredentialsB64          string
	CredentialsFile         string

	// Run
	CommissionPeriods string
	SettlementPeriod  string
	TargetRole        string
	SellerName        string
	SellerLevel       string
	GPColumn          string
	PayDateColumn     string
	DebugCode         string

	// Database
	DBDriver     string
	DBHost       string
	DBPort       int
	DBUser       string
	DBPassword   string
	DBName       string
	SQLiteDBPath string

	DateLookupCacheSize int
	LogLevel            string

	// invalid lists environment values that could not be parsed.
	invalid []string
}

func Load() *Config {
	var invalid []string
	envInt := func(key string, defaultValue int) int {
		v, err := getEnvInt(key, defaultValue)
		if err != nil {
			invalid = append(invalid, err.Error())
		}
		return v
	}
	envInt64 := func(key string, defaultValue int64) int64 {
		v, err := getEnvInt64(key, defaultValue)
		if err != nil {
			invalid = append(invalid, err.Error())
		}
		return v
	}

	cfg := &Config{
		ParamSpreadsheetID:      getEnv("GSHEETS_PARAM_KEY", ""),
		OperationsSpreadsheetID: getEnv("GSHEETS_SPREADSHEET_KEY", ""),
		LevelsGID:               envInt64("GSHEETS_NIVEIS_GID", 1124232309),
		RosterGID:               envInt64("GSHEETS_META_COLABORADOR_GID", 873121416),
		OperationsGID:           envInt64("GSHEETS_OPERACOES_GID", 1259003990),
		SheetsBackend:           getEnv("SHEETS_BACKEND", "google"),
		WorkbookDir:             getEnv("WORKBOOK_DIR", "./data/workbooks"),
		CredentialsJSONContent:  getEnv("GSHEETS_CREDENTIALS_JSON_CONTENT", ""),
		CredentialsB64:          getEnv("GSHEETS_CREDENTIALS_B64", ""),
		CredentialsFile:         getEnvFirst("", "GSHEETS_CREDENTIALS_JSON", "GOOGLE_APPLICATION_CREDENTIALS"),

		CommissionPeriods: getEnvFirst("", "COMMISSION_PERIODS", "TEST_COMPETENCIAS"),
		SettlementPeriod:  getEnvFirst("", "SETTLEMENT_PERIOD", "TEST_PAY_YYYYMM"),
		TargetRole:        getEnv("TARGET_ROLE", "Sales Executive"),
		SellerName:        getEnv("SELLER_NAME", ""),
		SellerLevel:       getEnv("SELLER_LEVEL", ""),
		GPColumn:          getEnv("GP_COLUMN", "Profit Liquido"),
		PayDateColumn:     getEnv("PAY_DATE_COLUMN", ""),
		DebugCode:         strings.TrimSpace(getEnv("DEBUG_CODE", "")),

		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBHost:       getEnv("DB_HOST", ""),
		DBPort:       envInt("DB_PORT", 3306),
		DBUser:       getEnv("DB_USER", ""),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "atlantis"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/shipments.db"),

		DateLookupCacheSize: envInt("DATE_LOOKUP_CACHE_SIZE", 0),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		invalid:             invalid,
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := slices.Clone(c.invalid)

	if c.ParamSpreadsheetID == "" {
		errors = append(errors, "GSHEETS_PARAM_KEY is required")
	}
	if c.OperationsSpreadsheetID == "" {
		errors = append(errors, "GSHEETS_SPREADSHEET_KEY is required")
	}

	validBackends := []string{"google", "xlsx"}
	if !slices.Contains(validBackends, c.SheetsBackend) {
		errors = append(errors, fmt.Sprintf("invalid sheets backend '%s': must be one of %v", c.SheetsBackend, validBackends))
	}
	if c.SheetsBackend == "google" {
		if c.CredentialsJSONContent == "" && c.CredentialsB64 == "" && c.CredentialsFile == "" {
			errors = append(errors, "one of GSHEETS_CREDENTIALS_JSON_CONTENT, GSHEETS_CREDENTIALS_B64 or GSHEETS_CREDENTIALS_JSON must be provided for google backend")
		}
		if c.CredentialsJSONContent == "" && c.CredentialsB64 == "" && c.CredentialsFile != "" {
			if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("service account file does not exist: %s", c.CredentialsFile))
			}
		}
	}
	if c.SheetsBackend == "xlsx" && c.WorkbookDir == "" {
		errors = append(errors, "WORKBOOK_DIR cannot be empty when using xlsx backend")
	}

	if strings.TrimSpace(c.CommissionPeriods) == "" {
		errors = append(errors, "COMMISSION_PERIODS is required (comma separated YYYY-MM list)")
	} else if _, err := core.ParsePeriods(c.CommissionPeriods); err != nil {
		errors = append(errors, fmt.Sprintf("invalid COMMISSION_PERIODS: %v", err))
	}
	if strings.TrimSpace(c.SettlementPeriod) == "" {
		errors = append(errors, "SETTLEMENT_PERIOD is required (YYYY-MM)")
	} else if _, err := core.ParsePeriod(c.SettlementPeriod); err != nil {
		errors = append(errors, fmt.Sprintf("invalid SETTLEMENT_PERIOD: %v", err))
	}
	if strings.TrimSpace(c.TargetRole) == "" {
		errors = append(errors, "TARGET_ROLE cannot be empty")
	}
	if (c.SellerName == "") != (c.SellerLevel == "") {
		errors = append(errors, "SELLER_NAME and SELLER_LEVEL must be set together")
	}
	if strings.TrimSpace(c.GPColumn) == "" {
		errors = append(errors, "GP_COLUMN cannot be empty")
	}

	validDrivers := []string{"mysql", "sqlite"}
	if !slices.Contains(validDrivers, c.DBDriver) {
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be one of %v", c.DBDriver, validDrivers))
	}
	if c.DBDriver == "mysql" {
		if c.DBHost == "" {
			errors = append(errors, "DB_HOST is required when using mysql driver")
		}
		if c.DBUser == "" {
			errors = append(errors, "DB_USER is required when using mysql driver")
		}
		if c.DBName == "" {
			errors = append(errors, "DB_NAME cannot be empty when using mysql driver")
		}
		if c.DBPort < 1 || c.DBPort > 65535 {
			errors = append(errors, fmt.Sprintf("invalid database port %d: must be between 1 and 65535", c.DBPort))
		}
	}
	if c.DBDriver == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite driver")
	}

	if c.DateLookupCacheSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid date lookup cache size %d: must be zero or positive", c.DateLookupCacheSize))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFirst returns the first non-empty variable among keys.
func getEnvFirst(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

// getEnvInt returns defaultValue and an error when the variable is set but
// is not an integer.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}
