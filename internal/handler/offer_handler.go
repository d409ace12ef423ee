package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/offers-api/internal/dto"
	"github.com/noah-isme/offers-api/pkg/response"
)

type offerSearcher interface {
	Search(ctx context.Context, raw map[string][]string) (*dto.OfferPage, error)
}

// OfferHandler exposes the offer query endpoint.
type OfferHandler struct {
	offers offerSearcher
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(offers offerSearcher) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// List godoc
// @Summary Search scholarship offers
// @Description Filters, sorts, paginates and projects offers. Prices are formatted as pt-BR reais.
// @Tags Offers
// @Produce json
// @Param kind query string false "Modality (presencial, ead)"
// @Param level query string false "Academic level (bacharelado, tecnologo, licenciatura)"
// @Param minPrice query number false "Lower bound of offeredPrice, inclusive"
// @Param maxPrice query number false "Upper bound of offeredPrice, inclusive"
// @Param courseName query string false "Case-insensitive course name fragment"
// @Param sortBy query string false "Sort field (courseName, offeredPrice, rating)"
// @Param orderBy query string false "Sort order (ASC, DESC)" default(ASC)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param fields query string false "Comma separated output fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	page, err := h.offers.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, http.StatusOK, page.Data, page.Metadata)
}
