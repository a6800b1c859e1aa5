// Package seed loads the starter garment catalog.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type garment struct {
	id        string
	name      string
	brand     string
	category  string
	basePrice string
}

var defaultGarments = []garment{
	{id: "gildan-5000", name: "Heavy Cotton Tee", brand: "Gildan", category: "t-shirt", basePrice: "3.50"},
	{id: "bella-3001", name: "Jersey Short Sleeve Tee", brand: "Bella+Canvas", category: "t-shirt", basePrice: "4.25"},
	{id: "gildan-18500", name: "Heavy Blend Hoodie", brand: "Gildan", category: "hoodie", basePrice: "12.80"},
	{id: "gildan-18000", name: "Heavy Blend Crewneck", brand: "Gildan", category: "sweatshirt", basePrice: "9.40"},
	{id: "port-pc54ls", name: "Core Cotton Long Sleeve", brand: "Port & Company", category: "long-sleeve", basePrice: "6.10"},
	{id: "richardson-112", name: "Trucker Cap", brand: "Richardson", category: "hat", basePrice: "5.75"},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts missing catalog garments in one transaction. Existing rows are
// left alone so edited prices survive restarts.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, g := range defaultGarments {
		if err := ensureGarment(ctx, tx, g, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureGarment(ctx context.Context, tx *sql.Tx, g garment, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM garments WHERE id = ? LIMIT 1)`, g.id).Scan(&exists); err != nil {
		return fmt.Errorf("check garment %s existence: %w", g.id, err)
	}
	if exists {
		return nil
	}

	price, err := decimal.NewFromString(g.basePrice)
	if err != nil {
		return fmt.Errorf("parse garment %s base price: %w", g.id, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO garments (id, name, brand, category, base_price, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.id, g.name, g.brand, g.category, price, true); err != nil {
		return fmt.Errorf("insert garment %s: %w", g.id, err)
	}
	stats.Inserts++
	return nil
}
