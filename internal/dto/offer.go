package dto

import (
	"bytes"
	"encoding/json"

	"github.com/noah-isme/offers-api/internal/models"
)

// OfferQueryParams carries the raw query string of GET /offers before
// normalisation. Empty strings mean the parameter was not supplied.
type OfferQueryParams struct {
	Kind       string `query:"kind"`
	Level      string `query:"level"`
	MinPrice   string `query:"minPrice" validate:"omitempty,numeric"`
	MaxPrice   string `query:"maxPrice" validate:"omitempty,numeric"`
	CourseName string `query:"courseName"`
	SortBy     string `query:"sortBy" validate:"omitempty,oneof=courseName offeredPrice rating"`
	OrderBy    string `query:"orderBy" validate:"omitempty,oneof=ASC DESC"`
	Page       string `query:"page" validate:"omitempty,positive_int"`
	Limit      string `query:"limit" validate:"omitempty,positive_int,max_limit"`
	Fields     string `query:"fields"`
}

// OfferRecord is a sparse offer in the response: only projected fields
// with a derivable value are present. JSON keys keep insertion order.
type OfferRecord struct {
	entries []offerEntry
}

type offerEntry struct {
	field models.OfferField
	value interface{}
}

// Set stores a formatted value for field, replacing any previous value.
func (r *OfferRecord) Set(field models.OfferField, value interface{}) {
	for i := range r.entries {
		if r.entries[i].field == field {
			r.entries[i].value = value
			return
		}
	}
	r.entries = append(r.entries, offerEntry{field: field, value: value})
}

// Get returns the value stored for field.
func (r OfferRecord) Get(field models.OfferField) (interface{}, bool) {
	for _, e := range r.entries {
		if e.field == field {
			return e.value, true
		}
	}
	return nil, false
}

// Fields lists the populated fields in order.
func (r OfferRecord) Fields() []models.OfferField {
	fields := make([]models.OfferField, 0, len(r.entries))
	for _, e := range r.entries {
		fields = append(fields, e.field)
	}
	return fields
}

// Len returns the number of populated fields.
func (r OfferRecord) Len() int {
	return len(r.entries)
}

// MarshalJSON encodes the record as an object keyed by field name.
func (r OfferRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.field.String())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// OfferPage is the paginated response of GET /offers.
type OfferPage struct {
	Data     []OfferRecord       `json:"data"`
	Metadata models.PageMetadata `json:"metadata"`
}
