package backend

import (
	"context"
	"errors"
	"fmt"

	"comissoes/internal/cache"
	"comissoes/internal/commission"
	"comissoes/internal/log"
	"comissoes/internal/sheets"
	"comissoes/internal/sheets/google"
	"comissoes/internal/sheets/xlsx"
	"comissoes/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tables, err := f.createTableReader(ctx, config)
	if err != nil {
		return nil, err
	}

	repo, err := f.createRepository(ctx, config)
	if err != nil {
		return nil, err
	}

	var dates commission.DateLookup = repo
	if config.DateCacheSize > 0 {
		cached := cache.NewCachedDates(repo, config.DateCacheSize)
		dates = cached
		f.logger.Info("Date lookup cache enabled", "size", config.DateCacheSize)
	}

	return &BackendResult{
		Tables: tables,
		Dates:  dates,
		Cleanup: func() error {
			if c, ok := dates.(*cache.CachedDates); ok {
				hits, misses := c.Stats()
				f.logger.WithComponent(log.ComponentCache).Debug("Date lookup cache stats", "hits", hits, "misses", misses)
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createTableReader(ctx context.Context, config Config) (sheets.TableReader, error) {
	switch config.Sheets {
	case GoogleSheets:
		cli, err := google.New(ctx, config.Credentials)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets reader")
		return cli, nil
	case XLSXSheets:
		f.logger.Info("Initialized workbook reader", "workbook_dir", config.WorkbookDir)
		return xlsx.New(config.WorkbookDir), nil
	default:
		return nil, fmt.Errorf("unsupported sheets backend: %s", config.Sheets)
	}
}

func (f *DefaultFactory) createRepository(ctx context.Context, config Config) (*storage.ShipmentRepository, error) {
	switch config.Database {
	case MySQLDatabase:
		repo, err := storage.OpenMySQL(ctx, config.MySQL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to shipment database: %w", err)
		}
		f.logger.Info("Connected to shipment database", log.FieldDriver, "mysql", "host", config.MySQL.Host, "database", config.MySQL.Database)
		return repo, nil
	case SQLiteDatabase:
		repo, err := storage.OpenSQLite(ctx, config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open shipment database: %w", err)
		}
		f.logger.Info("Opened local shipment database", log.FieldDriver, "sqlite", "db_path", config.SQLiteDBPath)
		return repo, nil
	default:
		return nil, errors.New("unsupported database driver: " + config.Database.String())
	}
}
