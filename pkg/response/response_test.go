package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/offers-api/internal/models"
	appErrors "github.com/noah-isme/offers-api/pkg/errors"
)

func TestPageKeepsEmptyData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Page(c, http.StatusOK, []string{}, models.PageMetadata{CurrentPage: 1, ItemsPerPage: 10})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":[],"metadata":{"totalItems":0,"totalPages":0,"currentPage":1,"itemsPerPage":10}}`, rec.Body.String())
}

func TestErrorRendersTypedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := appErrors.WithDetails(appErrors.ErrInvalidParameter, map[string]string{"limit": "must be a positive integer"})
	Error(c, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INVALID_PARAMETER","message":"invalid query parameters","status":400,"details":{"limit":"must be a positive integer"}}}`, rec.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestErrorHidesUntypedCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}
