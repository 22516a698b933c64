package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"comissoes/internal/core"
	"comissoes/internal/log"
)

const lookupDatesSQL = `
SELECT DATE_CREATION, DATE_COMMISSION
FROM M0020_SHIPMENT_HOUSE
WHERE SHIPMENT_NUMBER = ?
ORDER BY DATE_CREATION ASC
LIMIT 1`

const insertShipmentSQL = `
INSERT INTO M0020_SHIPMENT_HOUSE (SHIPMENT_NUMBER, DATE_CREATION, DATE_COMMISSION)
VALUES (?, ?, ?)`

// MySQLConfig holds the connection settings of the operational database.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN renders the go-sql-driver DSN. Times are parsed into time.Time.
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// ShipmentRepository resolves shipment dates from M0020_SHIPMENT_HOUSE.
type ShipmentRepository struct {
	db *sql.DB
}

// NewShipmentRepository wraps an already opened handle.
func NewShipmentRepository(db *sql.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// OpenMySQL connects to the operational MySQL database.
func OpenMySQL(ctx context.Context, c MySQLConfig) (*ShipmentRepository, error) {
	db, err := sql.Open("mysql", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql %s: %w", c.Host, err)
	}
	return NewShipmentRepository(db), nil
}

// OpenSQLite opens (and migrates) a local SQLite copy of the shipment table.
func OpenSQLite(ctx context.Context, dbPath string) (*ShipmentRepository, error) {
	if _, err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewShipmentRepository(db), nil
}

func (r *ShipmentRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LookupDates returns the creation and commission dates of a shipment. When
// several rows share the number, the earliest creation wins. Unknown numbers
// yield zero dates and no error.
func (r *ShipmentRepository) LookupDates(ctx context.Context, shipmentNumber string) (core.ShipmentDates, error) {
	shipmentNumber = strings.TrimSpace(shipmentNumber)
	if shipmentNumber == "" {
		return core.ShipmentDates{}, nil
	}

	var created, settled sql.NullString
	err := r.db.QueryRowContext(ctx, lookupDatesSQL, shipmentNumber).Scan(&created, &settled)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ShipmentDates{}, nil
	}
	if err != nil {
		return core.ShipmentDates{}, fmt.Errorf("lookup dates for %s: %w", shipmentNumber, err)
	}

	var out core.ShipmentDates
	if created.Valid {
		out.CreatedAt, _ = core.ParseDate(created.String)
	}
	if settled.Valid {
		out.SettledAt, _ = core.ParseDate(settled.String)
	}
	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Shipment dates resolved",
		log.FieldCode, shipmentNumber,
		"resolved", out.Resolved())
	return out, nil
}

// InsertShipment adds a row to the local table. Nil dates are stored as NULL.
func (r *ShipmentRepository) InsertShipment(ctx context.Context, shipmentNumber string, created, settled *time.Time) error {
	_, err := r.db.ExecContext(ctx, insertShipmentSQL, shipmentNumber, formatNullable(created), formatNullable(settled))
	if err != nil {
		return fmt.Errorf("insert shipment %s: %w", shipmentNumber, err)
	}
	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Shipment stored", log.FieldCode, shipmentNumber)
	return nil
}

func formatNullable(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02 15:04:05")
}
