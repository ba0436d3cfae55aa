package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventbook/internal/shared/utils/response"
)

type Controller interface {
	GetStatistics(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetStatistics godoc
// @Summary Platform-wide counts for the admin dashboard
// @Tags analytics
// @Produce json
// @Success 200 {object} response.ApiResponse
// @Router /events/event/getStatistics [get]
func (ctrl *controller) GetStatistics(c *gin.Context) {
	stats, err := ctrl.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Statistics fetched successfully", stats)
}
