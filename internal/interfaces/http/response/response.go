package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "bpr-presale.backend/internal/domain/errors"
)

// Envelope is the standard JSON response body
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Exists  *bool       `json:"exists,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessList sends a success response with a count and a data array
func SuccessList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Exists sends the email-existence check response
func Exists(c *gin.Context, exists bool) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Exists:  &exists,
	})
}

// Error sends an error response. Unknown errors become a 500 with the
// given fallback message; the underlying detail is included only in
// development mode and suppressed otherwise.
func Error(c *gin.Context, err error, fallback string) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(fallback, err)
	}

	body := Envelope{
		Success: false,
		Message: appErr.Message,
	}
	if appErr.Status >= http.StatusInternalServerError && gin.Mode() == gin.DebugMode && appErr.Err != nil {
		body.Error = appErr.Err.Error()
	}

	c.JSON(appErr.Status, body)
}
