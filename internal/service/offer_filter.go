package service

import (
	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

// CompileOfferFilter builds the store predicate for q. Inactive filters add
// no condition, so an empty query matches every offer.
func CompileOfferFilter(q models.OfferQuery) query.Predicate {
	var conditions []query.Condition

	if q.Kind != "" {
		conditions = append(conditions, query.Eq(models.ColumnKind, q.Kind))
	}
	if q.Level != "" {
		conditions = append(conditions, query.Eq(models.ColumnLevel, q.Level))
	}
	if q.CourseName != "" {
		conditions = append(conditions, query.ContainsFold(models.ColumnCourseName, q.CourseName))
	}

	switch {
	case q.MinPrice != nil && q.MaxPrice != nil:
		conditions = append(conditions, query.Between(models.ColumnOfferedPrice, *q.MinPrice, *q.MaxPrice))
	case q.MinPrice != nil:
		conditions = append(conditions, query.AtLeast(models.ColumnOfferedPrice, *q.MinPrice))
	case q.MaxPrice != nil:
		conditions = append(conditions, query.AtMost(models.ColumnOfferedPrice, *q.MaxPrice))
	}

	return query.And(conditions...)
}

// offerSort maps the requested sort key to a store ordering; nil means the
// store's default (id) order.
func offerSort(q models.OfferQuery) *models.OfferSort {
	column, ok := q.SortBy.Column()
	if !ok {
		return nil
	}
	return &models.OfferSort{Column: column, Direction: q.OrderBy.Direction()}
}
