package handlers

import (
	"errors"
	"net/http"

	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

type deliverRequest struct {
	Channel string `json:"channel" binding:"required" example:"email"` // email | pdf
}

// @Summary      Latest report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.Report
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reports/latest [get]
// @Security     BearerAuth
func (h *Handler) latestReport(c *gin.Context) {
	r, err := h.services.Reports.Latest()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Generate AI report
// @Description  Always 200. When the AI call fails the content is a fixed failure notice.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.Report
// @Router       /api/v1/reports/ai [post]
// @Security     BearerAuth
func (h *Handler) generateAIReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Reports.GenerateAI(c.Request.Context()))
}

// @Summary      Request expert audit
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.Report
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/reports/expert [post]
// @Security     BearerAuth
func (h *Handler) requestExpertReport(c *gin.Context) {
	r, err := h.services.Reports.RequestExpert(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusServiceUnavailable, "expert request was interrupted", "report_expert_failed", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Email or export the latest report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body      deliverRequest  true  "Channel"
// @Success      200   {object}  models.Delivery
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/reports/deliver [post]
// @Security     BearerAuth
func (h *Handler) deliverReport(c *gin.Context) {
	var req deliverRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	d, err := h.services.Reports.Deliver(c.Request.Context(), req.Channel)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, d)
	case errors.Is(err, service.ErrUnknownChannel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoReport):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusBadGateway, service.DeliveryFailureText, "report_deliver_failed", err, "channel", req.Channel)
	}
}
