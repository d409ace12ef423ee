package service

import (
	"math"

	"github.com/noah-isme/offers-api/internal/models"
)

const (
	defaultOfferPage  = 1
	defaultOfferLimit = 10
)

// PageWindow is the resolved pagination for one request.
type PageWindow struct {
	Page       int
	Limit      int
	Offset     int
	TotalItems int
	TotalPages int
}

// ResolvePage computes the page window for totalItems matches. Non-positive
// page and limit fall back to the defaults. A page past the end is clamped
// to the last page; with no matches the requested page is kept. The offset
// saturates at math.MaxInt instead of overflowing.
func ResolvePage(totalItems, page, limit int) PageWindow {
	if limit < 1 {
		limit = defaultOfferLimit
	}
	if page < 1 {
		page = defaultOfferPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = totalItems / limit
		if totalItems%limit != 0 {
			totalPages++
		}
	}

	if totalItems > 0 && page > totalPages {
		page = totalPages
	}

	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	return PageWindow{
		Page:       page,
		Limit:      limit,
		Offset:     offset,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Metadata converts the window to the response metadata.
func (w PageWindow) Metadata() models.PageMetadata {
	return models.PageMetadata{
		TotalItems:   w.TotalItems,
		TotalPages:   w.TotalPages,
		CurrentPage:  w.Page,
		ItemsPerPage: w.Limit,
	}
}
