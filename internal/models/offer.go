package models

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/offers-api/pkg/query"
)

// OfferTable is the storage table for offers.
const OfferTable = "offers"

// Offer storage columns.
const (
	ColumnID           = "id"
	ColumnCourseName   = "course_name"
	ColumnRating       = "rating"
	ColumnFullPrice    = "full_price"
	ColumnOfferedPrice = "offered_price"
	ColumnKind         = "kind"
	ColumnLevel        = "level"
	ColumnIESLogo      = "ies_logo"
	ColumnIESName      = "ies_name"
)

// OfferColumns lists every storage column in canonical order.
var OfferColumns = []string{
	ColumnID,
	ColumnCourseName,
	ColumnRating,
	ColumnFullPrice,
	ColumnOfferedPrice,
	ColumnKind,
	ColumnLevel,
	ColumnIESLogo,
	ColumnIESName,
}

// Known offer modalities. Other values are stored and passed through as-is.
const (
	KindPresencial = "presencial"
	KindEAD        = "ead"
)

// Known academic levels. Other values are stored and passed through as-is.
const (
	LevelBacharelado  = "bacharelado"
	LevelTecnologo    = "tecnologo"
	LevelLicenciatura = "licenciatura"
)

// Offer represents a scholarship offer for one course at one institution.
type Offer struct {
	ID           string          `db:"id" json:"id"`
	CourseName   string          `db:"course_name" json:"courseName" validate:"required"`
	Rating       float64         `db:"rating" json:"rating" validate:"gte=0,lte=5"`
	FullPrice    decimal.Decimal `db:"full_price" json:"fullPrice"`
	OfferedPrice decimal.Decimal `db:"offered_price" json:"offeredPrice"`
	Kind         string          `db:"kind" json:"kind" validate:"required"`
	Level        string          `db:"level" json:"level" validate:"required"`
	IESLogo      string          `db:"ies_logo" json:"iesLogo"`
	IESName      string          `db:"ies_name" json:"iesName"`
}

// Text exposes string columns for in-memory predicate evaluation.
func (o Offer) Text(column string) (string, bool) {
	switch column {
	case ColumnID:
		return o.ID, true
	case ColumnCourseName:
		return o.CourseName, true
	case ColumnKind:
		return o.Kind, true
	case ColumnLevel:
		return o.Level, true
	case ColumnIESLogo:
		return o.IESLogo, true
	case ColumnIESName:
		return o.IESName, true
	}
	return "", false
}

// Decimal exposes numeric columns for in-memory predicate evaluation.
func (o Offer) Decimal(column string) (decimal.Decimal, bool) {
	switch column {
	case ColumnRating:
		return decimal.NewFromFloat(o.Rating), true
	case ColumnFullPrice:
		return o.FullPrice, true
	case ColumnOfferedPrice:
		return o.OfferedPrice, true
	}
	return decimal.Decimal{}, false
}

// ColumnSet records which storage columns were loaded for a row.
type ColumnSet map[string]struct{}

// NewColumnSet builds a set from column names.
func NewColumnSet(columns ...string) ColumnSet {
	set := make(ColumnSet, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether column was loaded.
func (s ColumnSet) Has(column string) bool {
	_, ok := s[column]
	return ok
}

// FetchedOffer is a possibly sparse offer row together with the columns
// actually loaded; unloaded fields hold zero values and must not be read.
type FetchedOffer struct {
	Offer
	Columns ColumnSet
}

// SortOrder is the requested sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Direction converts the order to the query builder direction.
func (o SortOrder) Direction() query.Direction {
	if o == SortDesc {
		return query.Desc
	}
	return query.Asc
}

// OfferSortKey names a client-facing sortable field.
type OfferSortKey string

const (
	SortByCourseName   OfferSortKey = "courseName"
	SortByOfferedPrice OfferSortKey = "offeredPrice"
	SortByRating       OfferSortKey = "rating"
)

// Column returns the storage column behind the sort key.
func (k OfferSortKey) Column() (string, bool) {
	switch k {
	case SortByCourseName:
		return ColumnCourseName, true
	case SortByOfferedPrice:
		return ColumnOfferedPrice, true
	case SortByRating:
		return ColumnRating, true
	}
	return "", false
}

// OfferQuery is the normalised, validated form of a client's offer search.
// Empty strings and nil bounds mean "not requested".
type OfferQuery struct {
	Kind       string
	Level      string
	CourseName string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     OfferSortKey
	OrderBy    SortOrder
	Page       int
	Limit      int
	Fields     string
}

// OfferSort describes the store-level ordering of a fetch.
type OfferSort struct {
	Column    string
	Direction query.Direction
}

// OfferFetch is one page request against an offer store.
type OfferFetch struct {
	Predicate query.Predicate
	Sort      *OfferSort
	Offset    int
	Limit     int
	Columns   []string
}

// PageMetadata describes the pagination state of an offer page.
type PageMetadata struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}
