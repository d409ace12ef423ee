package service

import (
	"strings"

	"github.com/noah-isme/offers-api/internal/models"
)

// OfferProjection pairs the output shape with the minimal column set the
// store must load to produce it.
type OfferProjection struct {
	Output  []models.OfferField
	Columns []string
}

// ProjectOfferFields resolves the comma separated fields parameter. An empty
// value selects every field; unknown names are ignored. Output keeps the
// canonical field order regardless of request order.
func ProjectOfferFields(raw string) OfferProjection {
	requested := make(map[models.OfferField]bool)
	if strings.TrimSpace(raw) == "" {
		for _, f := range models.AllOfferFields {
			requested[f] = true
		}
	} else {
		for _, name := range strings.Split(raw, ",") {
			if f, ok := models.ParseOfferField(strings.TrimSpace(name)); ok {
				requested[f] = true
			}
		}
	}

	output := make([]models.OfferField, 0, len(requested))
	needed := map[string]bool{models.ColumnID: true}
	for _, f := range models.AllOfferFields {
		if !requested[f] {
			continue
		}
		output = append(output, f)
		for _, c := range f.Columns() {
			needed[c] = true
		}
	}

	columns := make([]string, 0, len(needed))
	for _, c := range models.OfferColumns {
		if needed[c] {
			columns = append(columns, c)
		}
	}

	return OfferProjection{Output: output, Columns: columns}
}
