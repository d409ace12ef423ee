package response

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/offers-api/internal/models"
	appErrors "github.com/noah-isme/offers-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data     interface{}          `json:"data,omitempty"`
	Metadata *models.PageMetadata `json:"metadata,omitempty"`
	Error    *appErrors.Error     `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Page sends a paginated success response. data must be a non-nil slice so
// an empty page encodes as [].
func Page(c *gin.Context, status int, data interface{}, metadata models.PageMetadata) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data, Metadata: &metadata})
}

// Error sends an error response converting the error to the common structure.
// err is also attached to the gin context for the access log.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}
