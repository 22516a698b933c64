package backend

import (
	"context"

	"comissoes/internal/commission"
	"comissoes/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds the two data sources of a run and a cleanup closing them
type BackendResult struct {
	Tables  sheets.TableReader
	Dates   commission.DateLookup
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend builds the table reader and date lookup described by config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// SheetsType selects where spreadsheet tabs are read from
type SheetsType string

const (
	GoogleSheets SheetsType = "google"
	XLSXSheets   SheetsType = "xlsx"
)

func (t SheetsType) String() string {
	return string(t)
}

// IsValid returns true if the sheets type is known
func (t SheetsType) IsValid() bool {
	switch t {
	case GoogleSheets, XLSXSheets:
		return true
	default:
		return false
	}
}

// DatabaseType selects the shipment date database driver
type DatabaseType string

const (
	MySQLDatabase  DatabaseType = "mysql"
	SQLiteDatabase DatabaseType = "sqlite"
)

func (t DatabaseType) String() string {
	return string(t)
}

// IsValid returns true if the database type is known
func (t DatabaseType) IsValid() bool {
	switch t {
	case MySQLDatabase, SQLiteDatabase:
		return true
	default:
		return false
	}
}
