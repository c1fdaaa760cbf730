package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
)

type MetaHandler struct {
	metrics *metrics.Collector
}

func NewMetaHandler(collector *metrics.Collector) *MetaHandler {
	return &MetaHandler{metrics: collector}
}

func (h *MetaHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *MetaHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, models.AnalysisSchema())
}

func (h *MetaHandler) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, metrics.Snapshot{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
