package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/offers-api/internal/dto"
	"github.com/noah-isme/offers-api/internal/models"
	appErrors "github.com/noah-isme/offers-api/pkg/errors"
)

var allowedOfferParams = map[string]struct{}{
	"kind":       {},
	"level":      {},
	"minPrice":   {},
	"maxPrice":   {},
	"courseName": {},
	"sortBy":     {},
	"orderBy":    {},
	"page":       {},
	"limit":      {},
	"fields":     {},
}

// DefaultMaxOfferLimit is the largest page size accepted when none is configured.
const DefaultMaxOfferLimit = 100

// OfferQueryParser validates raw offer query parameters and normalises them
// into a models.OfferQuery. Unknown parameters are rejected.
type OfferQueryParser struct {
	validator *validator.Validate
	maxLimit  int
}

// NewOfferQueryParser constructs a parser with its own validator instance,
// reporting errors under the query parameter names. A limit above maxLimit
// is rejected; a non-positive maxLimit falls back to DefaultMaxOfferLimit.
func NewOfferQueryParser(maxLimit int) *OfferQueryParser {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxOfferLimit
	}
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= 1
	})
	_ = validate.RegisterValidation("max_limit", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n <= maxLimit
	})
	return &OfferQueryParser{validator: validate, maxLimit: maxLimit}
}

// Parse turns raw query values into an OfferQuery. Every offending
// parameter is reported in the error details.
func (p *OfferQueryParser) Parse(raw map[string][]string) (models.OfferQuery, error) {
	details := make(map[string]string)

	for key, values := range raw {
		if _, ok := allowedOfferParams[key]; !ok {
			details[key] = "unknown parameter"
			continue
		}
		if len(values) > 1 {
			details[key] = "must be provided at most once"
		}
	}

	params := dto.OfferQueryParams{
		Kind:       firstValue(raw, "kind"),
		Level:      firstValue(raw, "level"),
		MinPrice:   firstValue(raw, "minPrice"),
		MaxPrice:   firstValue(raw, "maxPrice"),
		CourseName: firstValue(raw, "courseName"),
		SortBy:     firstValue(raw, "sortBy"),
		OrderBy:    firstValue(raw, "orderBy"),
		Page:       firstValue(raw, "page"),
		Limit:      firstValue(raw, "limit"),
		Fields:     firstValue(raw, "fields"),
	}

	if err := p.validator.Struct(params); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return models.OfferQuery{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate query")
		}
		for _, fe := range validationErrs {
			details[fe.Field()] = p.describeValidation(fe)
		}
	}

	if len(details) > 0 {
		return models.OfferQuery{}, invalidParameters(details)
	}

	q := models.OfferQuery{
		Kind:       params.Kind,
		Level:      params.Level,
		CourseName: params.CourseName,
		SortBy:     models.OfferSortKey(params.SortBy),
		OrderBy:    models.SortOrder(params.OrderBy),
		Fields:     params.Fields,
	}
	if q.OrderBy == "" {
		q.OrderBy = models.SortAsc
	}

	// Values below already passed validation.
	if params.Page != "" {
		q.Page, _ = strconv.Atoi(params.Page)
	}
	if params.Limit != "" {
		q.Limit, _ = strconv.Atoi(params.Limit)
	}
	if params.MinPrice != "" {
		minPrice, err := decimal.NewFromString(params.MinPrice)
		if err != nil {
			return models.OfferQuery{}, invalidParameters(map[string]string{"minPrice": "must be a numeric string"})
		}
		q.MinPrice = &minPrice
	}
	if params.MaxPrice != "" {
		maxPrice, err := decimal.NewFromString(params.MaxPrice)
		if err != nil {
			return models.OfferQuery{}, invalidParameters(map[string]string{"maxPrice": "must be a numeric string"})
		}
		q.MaxPrice = &maxPrice
	}

	return q, nil
}

func firstValue(raw map[string][]string, key string) string {
	values := raw[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func (p *OfferQueryParser) describeValidation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max_limit":
		return fmt.Sprintf("must be at most %d", p.maxLimit)
	case "numeric":
		return "must be a numeric string"
	case "positive_int":
		return "must be a positive integer"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func invalidParameters(details map[string]string) *appErrors.Error {
	names := make([]string, 0, len(details))
	for name := range details {
		names = append(names, name)
	}
	sort.Strings(names)
	msg := "invalid query parameters: " + strings.Join(names, ", ")
	return appErrors.WithDetails(appErrors.Clone(appErrors.ErrInvalidParameter, msg), details)
}
