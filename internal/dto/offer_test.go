package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/internal/models"
)

func TestOfferRecordKeepsInsertionOrder(t *testing.T) {
	var r OfferRecord
	r.Set(models.FieldCourseName, "Medicina")
	r.Set(models.FieldRating, 4.8)
	r.Set(models.FieldKind, "EaD 🏠")
	r.Set(models.FieldCourseName, "Direito")

	body, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"courseName":"Direito","rating":4.8,"kind":"EaD 🏠"}`, string(body))
	assert.Equal(t, 3, r.Len())
}

func TestOfferRecordEmpty(t *testing.T) {
	body, err := json.Marshal(OfferPage{Data: []OfferRecord{{}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{}],"metadata":{"totalItems":0,"totalPages":0,"currentPage":0,"itemsPerPage":0}}`, string(body))

	_, ok := OfferRecord{}.Get(models.FieldRating)
	assert.False(t, ok)
}
