package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dacdangvan/seotool-sub006/models"
)

// respondError maps err to an HTTP status and writes an ErrorResponse.
func respondError(c *gin.Context, err error) {
	ce := models.AsCrawlError(err)
	c.JSON(mapErrorToStatus(ce), models.ErrorResponse{
		Success: false,
		Error:   ce.ToDetail(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CrawlError) int {
	switch e.Code {
	case models.ErrCodeTimeout, models.ErrCodeSelectorTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeFetchFailed:
		return http.StatusBadGateway // 502
	case models.ErrCodeRenderLimit, models.ErrCodeBrowserClosed:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
