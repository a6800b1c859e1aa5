// Package catalog reads blank garments and their base prices.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrGarmentNotFound = errors.New("garment not found")

// Garment is a blank garment sold by the shop.
type Garment struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Active    bool            `json:"active"`
}

// Repository reads garments from SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository returns a garment repository backed by db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns an active garment by id.
func (r *Repository) Get(ctx context.Context, id string) (Garment, error) {
	var g Garment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, brand, category, base_price, active
		FROM garments
		WHERE id = ? AND active = 1
	`, id).Scan(&g.ID, &g.Name, &g.Brand, &g.Category, &g.BasePrice, &g.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Garment{}, fmt.Errorf("%w: %s", ErrGarmentNotFound, id)
	}
	if err != nil {
		return Garment{}, fmt.Errorf("query garment %s: %w", id, err)
	}
	return g, nil
}

// BasePrice returns the catalog cost of a blank garment.
func (r *Repository) BasePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	g, err := r.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return g.BasePrice, nil
}

// List returns active garments ordered by category and name.
func (r *Repository) List(ctx context.Context) ([]Garment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, brand, category, base_price, active
		FROM garments
		WHERE active = 1
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query garments: %w", err)
	}
	defer rows.Close()

	garments := []Garment{}
	for rows.Next() {
		var g Garment
		if err := rows.Scan(&g.ID, &g.Name, &g.Brand, &g.Category, &g.BasePrice, &g.Active); err != nil {
			return nil, fmt.Errorf("scan garment: %w", err)
		}
		garments = append(garments, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate garments: %w", err)
	}
	return garments, nil
}
