package models

// OfferField identifies one field of the offer response shape.
type OfferField int

// Output fields in canonical response order.
const (
	FieldCourseName OfferField = iota
	FieldRating
	FieldFullPrice
	FieldOfferedPrice
	FieldDiscountPercentage
	FieldKind
	FieldLevel
	FieldIESLogo
	FieldIESName
)

// AllOfferFields lists every output field in canonical order.
var AllOfferFields = []OfferField{
	FieldCourseName,
	FieldRating,
	FieldFullPrice,
	FieldOfferedPrice,
	FieldDiscountPercentage,
	FieldKind,
	FieldLevel,
	FieldIESLogo,
	FieldIESName,
}

var offerFieldNames = map[OfferField]string{
	FieldCourseName:         "courseName",
	FieldRating:             "rating",
	FieldFullPrice:          "fullPrice",
	FieldOfferedPrice:       "offeredPrice",
	FieldDiscountPercentage: "discountPercentage",
	FieldKind:               "kind",
	FieldLevel:              "level",
	FieldIESLogo:            "iesLogo",
	FieldIESName:            "iesName",
}

var offerFieldsByName = func() map[string]OfferField {
	m := make(map[string]OfferField, len(offerFieldNames))
	for f, name := range offerFieldNames {
		m[name] = f
	}
	return m
}()

// String returns the JSON name of the field.
func (f OfferField) String() string {
	if name, ok := offerFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseOfferField resolves a client-supplied field name. Names are case sensitive.
func ParseOfferField(name string) (OfferField, bool) {
	f, ok := offerFieldsByName[name]
	return f, ok
}

// Columns returns the storage columns the field is computed from.
func (f OfferField) Columns() []string {
	switch f {
	case FieldCourseName:
		return []string{ColumnCourseName}
	case FieldRating:
		return []string{ColumnRating}
	case FieldFullPrice:
		return []string{ColumnFullPrice}
	case FieldOfferedPrice:
		return []string{ColumnOfferedPrice}
	case FieldDiscountPercentage:
		return []string{ColumnFullPrice, ColumnOfferedPrice}
	case FieldKind:
		return []string{ColumnKind}
	case FieldLevel:
		return []string{ColumnLevel}
	case FieldIESLogo:
		return []string{ColumnIESLogo}
	case FieldIESName:
		return []string{ColumnIESName}
	}
	return nil
}
