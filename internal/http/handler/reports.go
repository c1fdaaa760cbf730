package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	summaries, err := h.reports.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, dto.ReportListResponse{Reports: summaries})
}

func (h *ReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load report")
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{Report: report, ShareURL: h.reports.ShareURL(report.ID)})
}

func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reports.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete report")
		return
	}
	c.Status(http.StatusNoContent)
}
