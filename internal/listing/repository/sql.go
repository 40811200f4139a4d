package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/jmoiron/sqlx"
)

// Prices are TEXT so decimals survive both SQLite and Postgres without float rounding.
const schema = `
CREATE TABLE IF NOT EXISTS listings (
    id              BIGINT PRIMARY KEY,
    name            TEXT NOT NULL,
    brand           TEXT NOT NULL,
    caliber         TEXT NOT NULL,
    grain_weight    INTEGER NOT NULL,
    bullet_type     TEXT NOT NULL DEFAULT '',
    quantity        INTEGER NOT NULL,
    price           TEXT NOT NULL,
    price_per_round TEXT NOT NULL,
    retailer        TEXT NOT NULL,
    in_stock        BOOLEAN NOT NULL DEFAULT FALSE,
    image_url       TEXT NOT NULL DEFAULT '',
    position        INTEGER NOT NULL DEFAULT 0
)`

const selectColumns = `id, name, brand, caliber, grain_weight, bullet_type, quantity,
    price, price_per_round, retailer, in_stock, image_url`

// listingRow carries the catalog position alongside a listing on insert.
type listingRow struct {
	model.Listing
	Position int `db:"position"`
}

// SQLRepository stores the catalog in a listings table. The service snapshots
// it into a MemoryRepository at start-up.
type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// ReplaceAll swaps the table contents for listings in one transaction.
func (r *SQLRepository) ReplaceAll(ctx context.Context, listings []model.Listing) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}

	query := `
        INSERT INTO listings (
            id, name, brand, caliber, grain_weight, bullet_type, quantity,
            price, price_per_round, retailer, in_stock, image_url, position
        )
        VALUES (
            :id, :name, :brand, :caliber, :grain_weight, :bullet_type, :quantity,
            :price, :price_per_round, :retailer, :in_stock, :image_url, :position
        )
    `
	for i, l := range listings {
		if _, err := tx.NamedExecContext(ctx, query, listingRow{Listing: l, Position: i}); err != nil {
			return fmt.Errorf("failed to insert listing %d: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

// FindAll returns listings in the order ReplaceAll stored them.
func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	query := "SELECT " + selectColumns + " FROM listings ORDER BY position ASC, id ASC"
	if err := r.DB.SelectContext(ctx, &listings, query); err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	return listings, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Listing, error) {
	var l model.Listing
	query := r.DB.Rebind("SELECT " + selectColumns + " FROM listings WHERE id = ? LIMIT 1")
	err := r.DB.GetContext(ctx, &l, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Snapshot reads the table once and freezes it as the catalog.
func (r *SQLRepository) Snapshot(ctx context.Context) (*MemoryRepository, error) {
	listings, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot listings: %w", err)
	}
	return NewMemoryRepository(listings), nil
}
