package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/pkg/query"
)

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCompileOfferFilterEmpty(t *testing.T) {
	p := CompileOfferFilter(models.OfferQuery{})
	assert.True(t, p.Empty())
	assert.True(t, p.Match(models.Offer{CourseName: "Medicina"}))
}

func TestCompileOfferFilterConjunction(t *testing.T) {
	p := CompileOfferFilter(models.OfferQuery{
		Kind:       models.KindPresencial,
		Level:      models.LevelBacharelado,
		CourseName: "MED",
		MinPrice:   decimalPtr(500),
		MaxPrice:   decimalPtr(900),
	})
	require.Equal(t, 4, p.Len())

	sql, args := p.SQL()
	assert.Equal(t, `kind = ? AND level = ? AND LOWER(course_name) LIKE ? ESCAPE '\' AND offered_price BETWEEN ? AND ?`, sql)
	assert.Equal(t, []interface{}{"presencial", "bacharelado", "%med%", decimal.NewFromInt(500), decimal.NewFromInt(900)}, args)

	medicina := models.Offer{CourseName: "Medicina", Kind: models.KindPresencial, Level: models.LevelBacharelado, OfferedPrice: decimal.NewFromInt(876)}
	assert.True(t, p.Match(medicina))

	ead := medicina
	ead.Kind = models.KindEAD
	assert.False(t, p.Match(ead))

	expensive := medicina
	expensive.OfferedPrice = decimal.NewFromInt(901)
	assert.False(t, p.Match(expensive))
}

func TestCompileOfferFilterOpenBounds(t *testing.T) {
	sql, _ := CompileOfferFilter(models.OfferQuery{MinPrice: decimalPtr(300)}).SQL()
	assert.Equal(t, "offered_price >= ?", sql)

	sql, _ = CompileOfferFilter(models.OfferQuery{MaxPrice: decimalPtr(300)}).SQL()
	assert.Equal(t, "offered_price <= ?", sql)
}

func TestOfferSort(t *testing.T) {
	assert.Nil(t, offerSort(models.OfferQuery{OrderBy: models.SortDesc}))

	s := offerSort(models.OfferQuery{SortBy: models.SortByRating, OrderBy: models.SortDesc})
	require.NotNil(t, s)
	assert.Equal(t, models.ColumnRating, s.Column)
	assert.Equal(t, query.Desc, s.Direction)

	s = offerSort(models.OfferQuery{SortBy: models.SortByCourseName, OrderBy: models.SortAsc})
	require.NotNil(t, s)
	assert.Equal(t, models.ColumnCourseName, s.Column)
	assert.Equal(t, query.Asc, s.Direction)
}
