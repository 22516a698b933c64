package backend

import (
	"fmt"

	"comissoes/internal/config"
	"comissoes/internal/sheets/google"
	"comissoes/internal/storage"
)

// Config holds configuration for backend creation
type Config struct {
	Sheets      SheetsType
	Credentials google.Credentials
	WorkbookDir string

	Database     DatabaseType
	MySQL        storage.MySQLConfig
	SQLiteDBPath string

	// DateCacheSize enables lookup memoization when positive
	DateCacheSize int
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	c := Config{
		Sheets: SheetsType(appConfig.SheetsBackend),
		Credentials: google.Credentials{
			JSONContent: appConfig.CredentialsJSONContent,
			Base64:      appConfig.CredentialsB64,
			File:        appConfig.CredentialsFile,
		},
		WorkbookDir: appConfig.WorkbookDir,

		Database: DatabaseType(appConfig.DBDriver),
		MySQL: storage.MySQLConfig{
			Host:     appConfig.DBHost,
			Port:     appConfig.DBPort,
			User:     appConfig.DBUser,
			Password: appConfig.DBPassword,
			Database: appConfig.DBName,
		},
		SQLiteDBPath: appConfig.SQLiteDBPath,

		DateCacheSize: appConfig.DateLookupCacheSize,
	}
	return c, c.Validate()
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Sheets.IsValid() {
		return fmt.Errorf("invalid sheets backend: %s", c.Sheets)
	}
	if !c.Database.IsValid() {
		return fmt.Errorf("invalid database driver: %s", c.Database)
	}

	switch c.Sheets {
	case XLSXSheets:
		if c.WorkbookDir == "" {
			return fmt.Errorf("workbook directory is required for xlsx backend")
		}
	case GoogleSheets:
		// Credentials are resolved lazily so the error names every source tried.
	}

	switch c.Database {
	case MySQLDatabase:
		if c.MySQL.Host == "" {
			return fmt.Errorf("database host is required for mysql driver")
		}
	case SQLiteDatabase:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite driver")
		}
	}

	if c.DateCacheSize < 0 {
		return fmt.Errorf("date cache size must not be negative")
	}
	return nil
}
