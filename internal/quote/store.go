package quote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// createdAtLayout is fixed width so created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQLiteStore keeps quotes in the quotes table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a store backed by db.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Insert(ctx context.Context, q Quote) error {
	pricingJSON, err := json.Marshal(q.Pricing)
	if err != nil {
		return fmt.Errorf("encode quote pricing: %w", err)
	}
	totalsJSON, err := json.Marshal(q.Totals)
	if err != nil {
		return fmt.Errorf("encode quote totals: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, created_at, customer_name, notes, kind, template_id, pricing_json, totals_json, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.CreatedAt.UTC().Format(createdAtLayout), q.CustomerName, q.Notes, string(q.Kind), q.TemplateID,
		string(pricingJSON), string(totalsJSON), q.Totals.Total); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// List returns quotes newest first. A non-empty query matches customer name,
// notes or id.
func (s *SQLiteStore) List(ctx context.Context, query string) ([]ListItem, error) {
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, customer_name, kind, template_id, total
		FROM quotes
		WHERE (? = '' OR customer_name LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\' OR id LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]ListItem, 0)
	for rows.Next() {
		var (
			item      ListItem
			createdAt string
			kind      string
		)
		if err := rows.Scan(&item.ID, &createdAt, &item.CustomerName, &kind, &item.TemplateID, &item.Total); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if item.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse quote %s created_at: %w", item.ID, err)
		}
		item.Kind = Kind(kind)
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// Get reads a quote and its snapshots without recalculating anything.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Quote, error) {
	var (
		q           Quote
		createdAt   string
		kind        string
		pricingJSON string
		totalsJSON  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, customer_name, notes, kind, template_id, pricing_json, totals_json
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.ID, &createdAt, &q.CustomerName, &q.Notes, &kind, &q.TemplateID, &pricingJSON, &totalsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote %s: %w", id, err)
	}

	if q.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return Quote{}, fmt.Errorf("parse quote %s created_at: %w", id, err)
	}
	q.Kind = Kind(kind)
	if err := json.Unmarshal([]byte(pricingJSON), &q.Pricing); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s pricing: %w", id, err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &q.Totals); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s totals: %w", id, err)
	}
	return q, nil
}

var _ Store = (*SQLiteStore)(nil)

