package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/models"
)

// Decide returns a handler for POST /api/v1/decide. The page is fetched
// when the request carries no HTML.
func Decide(cr *crawler.Crawler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DecideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		dec, _, err := cr.Decide(c.Request.Context(), req.URL, req.HTML)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.DecideResponse{Success: true, Decision: &dec})
	}
}
