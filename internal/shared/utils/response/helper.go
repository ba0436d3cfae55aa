package response

import (
	"log/slog"

	"eventbook/internal/shared/apierror"
	"eventbook/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, ApiResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    code < 400,
	})
}

// RespondError converts any error into the envelope. Domain errors keep their
// status and message; everything else is logged and degraded to a 500.
func RespondError(c *gin.Context, err error) {
	if apierror.IsUnexpected(err) {
		logger.GetDefault().Error("unexpected error",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
	}

	apiErr := apierror.From(err)
	c.JSON(apiErr.StatusCode, ApiResponse{
		StatusCode: apiErr.StatusCode,
		Data:       nil,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     errorsField(apiErr),
	})
}

func errorsField(apiErr *apierror.ApiError) interface{} {
	if apiErr.Detail == "" {
		return nil
	}
	return apiErr.Detail
}
