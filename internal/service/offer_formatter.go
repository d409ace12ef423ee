package service

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/noah-isme/offers-api/internal/dto"
	"github.com/noah-isme/offers-api/internal/models"
)

// currencyPrefix is the BRL symbol followed by a no-break space, as in CLDR pt-BR.
const currencyPrefix = "R$\u00a0"

var errDegeneratePrice = errors.New("full price must be positive to derive a discount")

var kindLabels = map[string]string{
	models.KindPresencial: "Presencial 🏫",
	models.KindEAD:        "EaD 🏠",
}

var levelLabels = map[string]string{
	models.LevelBacharelado:  "Graduação (bacharelado) 🎓",
	models.LevelTecnologo:    "Graduação (tecnólogo) 🎓",
	models.LevelLicenciatura: "Graduação (licenciatura) 🎓",
}

var hundred = decimal.NewFromInt(100)

// fieldFormatter derives the display value of one field. It reports false
// when the raw inputs were not loaded or the value cannot be derived.
type fieldFormatter func(o models.FetchedOffer) (interface{}, bool)

var offerFormatters = [...]fieldFormatter{
	models.FieldCourseName:         passText(models.ColumnCourseName, func(o models.Offer) string { return o.CourseName }),
	models.FieldRating:             formatRating,
	models.FieldFullPrice:          formatPrice(models.ColumnFullPrice, func(o models.Offer) decimal.Decimal { return o.FullPrice }),
	models.FieldOfferedPrice:       formatPrice(models.ColumnOfferedPrice, func(o models.Offer) decimal.Decimal { return o.OfferedPrice }),
	models.FieldDiscountPercentage: formatDiscount,
	models.FieldKind:               formatKind,
	models.FieldLevel:              formatLevel,
	models.FieldIESLogo:            passText(models.ColumnIESLogo, func(o models.Offer) string { return o.IESLogo }),
	models.FieldIESName:            passText(models.ColumnIESName, func(o models.Offer) string { return o.IESName }),
}

// FormatOffer renders the requested fields of o. Fields without a derivable
// value are left out of the record.
func FormatOffer(o models.FetchedOffer, fields []models.OfferField) dto.OfferRecord {
	var record dto.OfferRecord
	for _, f := range fields {
		if int(f) < 0 || int(f) >= len(offerFormatters) {
			continue
		}
		if value, ok := offerFormatters[f](o); ok {
			record.Set(f, value)
		}
	}
	return record
}

// FormatCurrency renders amount as pt-BR Brazilian reais, e.g. "R$ 1.200,00".
func FormatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return currencyPrefix + p.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// KindLabel returns the display label of a modality; unknown values pass through.
func KindLabel(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return kind
}

// LevelLabel returns the display label of an academic level; unknown values pass through.
func LevelLabel(level string) string {
	if label, ok := levelLabels[level]; ok {
		return label
	}
	return level
}

// DiscountPercentage returns round((full-offered)/full*100), rounding half
// away from zero.
func DiscountPercentage(fullPrice, offeredPrice decimal.Decimal) (int64, error) {
	if !fullPrice.IsPositive() {
		return 0, errDegeneratePrice
	}
	pct := fullPrice.Sub(offeredPrice).Mul(hundred).Div(fullPrice).Round(0)
	return pct.IntPart(), nil
}

func passText(column string, get func(models.Offer) string) fieldFormatter {
	return func(o models.FetchedOffer) (interface{}, bool) {
		if !o.Columns.Has(column) {
			return nil, false
		}
		return get(o.Offer), true
	}
}

func formatRating(o models.FetchedOffer) (interface{}, bool) {
	if !o.Columns.Has(models.ColumnRating) {
		return nil, false
	}
	return o.Rating, true
}

func formatPrice(column string, get func(models.Offer) decimal.Decimal) fieldFormatter {
	return func(o models.FetchedOffer) (interface{}, bool) {
		if !o.Columns.Has(column) {
			return nil, false
		}
		return FormatCurrency(get(o.Offer)), true
	}
}

func formatDiscount(o models.FetchedOffer) (interface{}, bool) {
	if !o.Columns.Has(models.ColumnFullPrice) || !o.Columns.Has(models.ColumnOfferedPrice) {
		return nil, false
	}
	pct, err := DiscountPercentage(o.FullPrice, o.OfferedPrice)
	if err != nil {
		return nil, false
	}
	return strconv.FormatInt(pct, 10) + "%", true
}

func formatKind(o models.FetchedOffer) (interface{}, bool) {
	if !o.Columns.Has(models.ColumnKind) {
		return nil, false
	}
	return KindLabel(o.Kind), true
}

func formatLevel(o models.FetchedOffer) (interface{}, bool) {
	if !o.Columns.Has(models.ColumnLevel) {
		return nil, false
	}
	return LevelLabel(o.Level), true
}
