package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/choozin/paintmatepro/pkg/api"
	qerr "github.com/choozin/paintmatepro/pkg/errors"
)

// Config holds Postgres connection configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
}

// DefaultConfig returns default development configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		Database: "paintmate",
		Username: "paintmate",
		SSLMode:  "disable",
	}
}

func (c *Config) dsn() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode)
}

// PostgresStore implements Store over the paint_products table. Prices are
// stored as numeric and carried as decimals until the engine boundary, where
// they become float64.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and verifies a connection.
func NewPostgresStore(ctx context.Context, cfg *Config) (*PostgresStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	connector, err := pq.NewConnector(cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("postgres connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, qerr.NewStoreUnavailableError(err.Error())
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks connectivity for readiness probes.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const productColumns = `id, sku, name, unit_price, coverage_sqft, unit`

func (s *PostgresStore) Product(ctx context.Context, id string) (api.CatalogItem, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM paint_products WHERE id = $1`, id)
	item, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return api.CatalogItem{}, false, nil
	}
	if err != nil {
		return api.CatalogItem{}, false, fmt.Errorf("product lookup: %w", err)
	}
	return item, true, nil
}

func (s *PostgresStore) Products(ctx context.Context) ([]api.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM paint_products ORDER BY sku, id`)
	if err != nil {
		return nil, fmt.Errorf("product list: %w", err)
	}
	defer rows.Close()

	items := make([]api.CatalogItem, 0, 32)
	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("product scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Upsert inserts or replaces a product row; used by the catalog import
// tooling, not by the engine.
func (s *PostgresStore) Upsert(ctx context.Context, item api.CatalogItem) error {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO paint_products (id, sku, name, unit_price, coverage_sqft, unit)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			sku = EXCLUDED.sku,
			name = EXCLUDED.name,
			unit_price = EXCLUDED.unit_price,
			coverage_sqft = EXCLUDED.coverage_sqft,
			unit = EXCLUDED.unit`,
		id, item.SKU, item.Name,
		decimal.NewFromFloat(item.UnitPrice),
		item.CoverageSqft, item.Unit)
	if err != nil {
		return fmt.Errorf("product upsert: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (api.CatalogItem, error) {
	var (
		item     api.CatalogItem
		price    decimal.Decimal
		coverage sql.NullFloat64
		unit     sql.NullString
		sku      sql.NullString
	)
	if err := r.Scan(&item.ID, &sku, &item.Name, &price, &coverage, &unit); err != nil {
		return api.CatalogItem{}, err
	}
	item.SKU = sku.String
	item.UnitPrice = price.InexactFloat64()
	item.CoverageSqft = coverage.Float64
	item.Unit = unit.String
	return item, nil
}
