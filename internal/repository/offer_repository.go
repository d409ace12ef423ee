package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

var offerSchema = []string{
	`CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		course_name TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		full_price NUMERIC(10,2) NOT NULL,
		offered_price NUMERIC(10,2) NOT NULL,
		kind TEXT NOT NULL,
		level TEXT NOT NULL,
		ies_logo TEXT NOT NULL DEFAULT '',
		ies_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_kind ON offers (kind)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_level ON offers (level)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_offered_price ON offers (offered_price)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_rating ON offers (rating)`,
}

const insertOfferQuery = `INSERT INTO offers (id, course_name, rating, full_price, offered_price, kind, level, ies_logo, ies_name)
VALUES (:id, :course_name, :rating, :full_price, :offered_price, :kind, :level, :ies_logo, :ies_name)`

// OfferRepository reads offers from a SQL store (PostgreSQL or SQLite).
type OfferRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewOfferRepository constructs an OfferRepository. A positive timeout bounds
// every store call.
func NewOfferRepository(db *sqlx.DB, timeout time.Duration) *OfferRepository {
	return &OfferRepository{db: db, timeout: timeout}
}

// EnsureSchema creates the offers table and its indexes when missing.
func (r *OfferRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	for _, stmt := range offerSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure offer schema: %w", err)
		}
	}
	return nil
}

// Count returns how many offers satisfy predicate.
func (r *OfferRepository) Count(ctx context.Context, predicate query.Predicate) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlText, args := query.From(models.OfferTable).Where(predicate).Count().Build()
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(sqlText), args...); err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return total, nil
}

// Find returns one page of offers. Only fetch.Columns are loaded; an empty
// column list loads every column. Rows are ordered by the requested sort,
// then by id ascending.
func (r *OfferRepository) Find(ctx context.Context, fetch models.OfferFetch) ([]models.FetchedOffer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	columns := fetch.Columns
	if len(columns) == 0 {
		columns = models.OfferColumns
	}

	builder := query.From(models.OfferTable).
		Select(columns...).
		Where(fetch.Predicate)
	if fetch.Sort != nil && fetch.Sort.Column != models.ColumnID {
		builder = builder.OrderBy(fetch.Sort.Column, fetch.Sort.Direction)
	}
	builder = builder.OrderBy(models.ColumnID, query.Asc).
		Limit(fetch.Limit).
		Offset(fetch.Offset)

	sqlText, args := builder.Build()
	var rows []models.Offer
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(sqlText), args...); err != nil {
		return nil, fmt.Errorf("find offers: %w", err)
	}

	loaded := models.NewColumnSet(columns...)
	offers := make([]models.FetchedOffer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, models.FetchedOffer{Offer: row, Columns: loaded})
	}
	return offers, nil
}

// CountAll returns the number of stored offers.
func (r *OfferRepository) CountAll(ctx context.Context) (int, error) {
	return r.Count(ctx, query.Predicate{})
}

// InsertMany stores offers in a single transaction.
func (r *OfferRepository) InsertMany(ctx context.Context, offers []models.Offer) (err error) {
	if len(offers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin offer insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, insertOfferQuery)
	if err != nil {
		return fmt.Errorf("prepare offer insert: %w", err)
	}
	defer stmt.Close()

	for _, offer := range offers {
		if _, err = stmt.ExecContext(ctx, offer); err != nil {
			return fmt.Errorf("insert offer %s: %w", offer.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit offer insert: %w", err)
	}
	return nil
}

// Ping checks that the store is reachable.
func (r *OfferRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.PingContext(ctx)
}

func (r *OfferRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
