package summary

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"assetdesk/pkg/response"
)

type SummaryHandler struct {
	service SummaryService
}

func NewSummaryHandler(service SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/summary", h.summary)
	router.GET("/summary/export", h.export)
	router.GET("/health", h.health)
}

// @Summary      Get asset summary
// @Description  Asset counts grouped by type, department, brand and model
// @Tags         summary
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Row} "Summary retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /summary [get]
func (h *SummaryHandler) summary(c *gin.Context) {
	rows, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "summary fetched", rows)
}

// @Summary      Export asset summary as XLSX
// @Tags         summary
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file "XLSX workbook"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /summary/export [get]
func (h *SummaryHandler) export(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("asset-summary-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary      Health check
// @Tags         summary
// @Produce      json
// @Success      200  {object}  map[string]string "Service status"
// @Router       /health [get]
func (h *SummaryHandler) health(c *gin.Context) {
	dbStatus := "connected"
	if !h.service.Healthy(c.Request.Context()) {
		dbStatus = "disconnected"
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": dbStatus})
}
