package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

// MemoryOfferRepository keeps offers in process memory. It backs
// DB_DRIVER=memory and mirrors OfferRepository semantics, except that text
// is ordered with pt-BR collation.
type MemoryOfferRepository struct {
	mu     sync.RWMutex
	offers []models.Offer
}

// NewMemoryOfferRepository creates a store preloaded with offers.
func NewMemoryOfferRepository(offers ...models.Offer) *MemoryOfferRepository {
	r := &MemoryOfferRepository{}
	r.offers = append(r.offers, offers...)
	return r
}

// Count returns how many offers satisfy predicate.
func (r *MemoryOfferRepository) Count(ctx context.Context, predicate query.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, o := range r.offers {
		if predicate.Match(o) {
			total++
		}
	}
	return total, nil
}

// Find returns one page of matching offers carrying only fetch.Columns.
func (r *MemoryOfferRepository) Find(ctx context.Context, fetch models.OfferFetch) ([]models.FetchedOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find offers: %w", err)
	}

	r.mu.RLock()
	matched := make([]models.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		if fetch.Predicate.Match(o) {
			matched = append(matched, o)
		}
	}
	r.mu.RUnlock()

	sortOffers(matched, fetch.Sort)

	start := fetch.Offset
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if fetch.Limit > 0 && fetch.Limit < end-start {
		end = start + fetch.Limit
	}

	columns := fetch.Columns
	if len(columns) == 0 {
		columns = models.OfferColumns
	}
	loaded := models.NewColumnSet(columns...)

	page := make([]models.FetchedOffer, 0, end-start)
	for _, o := range matched[start:end] {
		page = append(page, models.FetchedOffer{Offer: projectOffer(o, loaded), Columns: loaded})
	}
	return page, nil
}

// CountAll returns the number of stored offers.
func (r *MemoryOfferRepository) CountAll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.offers), nil
}

// InsertMany appends offers; the batch is rejected as a whole when any id
// is already stored or repeated.
func (r *MemoryOfferRepository) InsertMany(ctx context.Context, offers []models.Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[string]struct{}, len(r.offers)+len(offers))
	for _, o := range r.offers {
		ids[o.ID] = struct{}{}
	}
	for _, o := range offers {
		if _, dup := ids[o.ID]; dup {
			return fmt.Errorf("insert offer %s: duplicate id", o.ID)
		}
		ids[o.ID] = struct{}{}
	}

	r.offers = append(r.offers, offers...)
	return nil
}

// Ping always succeeds.
func (r *MemoryOfferRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func sortOffers(offers []models.Offer, order *models.OfferSort) {
	var compare func(a, b models.Offer) int
	if order != nil {
		switch order.Column {
		case models.ColumnCourseName:
			// Collators are not safe for concurrent use.
			collator := collate.New(language.BrazilianPortuguese)
			compare = func(a, b models.Offer) int { return collator.CompareString(a.CourseName, b.CourseName) }
		case models.ColumnOfferedPrice:
			compare = func(a, b models.Offer) int { return a.OfferedPrice.Cmp(b.OfferedPrice) }
		case models.ColumnFullPrice:
			compare = func(a, b models.Offer) int { return a.FullPrice.Cmp(b.FullPrice) }
		case models.ColumnRating:
			compare = func(a, b models.Offer) int { return compareFloat(a.Rating, b.Rating) }
		}
		if compare != nil && order.Direction == query.Desc {
			asc := compare
			compare = func(a, b models.Offer) int { return -asc(a, b) }
		}
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if compare != nil {
			if c := compare(offers[i], offers[j]); c != 0 {
				return c < 0
			}
		}
		return offers[i].ID < offers[j].ID
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func projectOffer(o models.Offer, columns models.ColumnSet) models.Offer {
	var p models.Offer
	if columns.Has(models.ColumnID) {
		p.ID = o.ID
	}
	if columns.Has(models.ColumnCourseName) {
		p.CourseName = o.CourseName
	}
	if columns.Has(models.ColumnRating) {
		p.Rating = o.Rating
	}
	if columns.Has(models.ColumnFullPrice) {
		p.FullPrice = o.FullPrice
	}
	if columns.Has(models.ColumnOfferedPrice) {
		p.OfferedPrice = o.OfferedPrice
	}
	if columns.Has(models.ColumnKind) {
		p.Kind = o.Kind
	}
	if columns.Has(models.ColumnLevel) {
		p.Level = o.Level
	}
	if columns.Has(models.ColumnIESLogo) {
		p.IESLogo = o.IESLogo
	}
	if columns.Has(models.ColumnIESName) {
		p.IESName = o.IESName
	}
	return p
}
