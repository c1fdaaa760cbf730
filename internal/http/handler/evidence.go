package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/classify"
	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/service"
)

type EvidenceHandler struct {
	evidence service.EvidenceFetcher
}

func NewEvidenceHandler(evidence service.EvidenceFetcher) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence}
}

// ResearchPapers never fails once the idea is present: provider failures
// degrade to a synthesized article.
func (h *EvidenceHandler) ResearchPapers(c *gin.Context) {
	var req dto.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Idea) == "" {
		badRequest(c, "Project idea is required")
		return
	}

	articles := h.evidence.FetchEvidence(c.Request.Context(), req.Idea)
	c.JSON(http.StatusOK, dto.EvidenceResponse{Articles: articles, Source: "api"})
}

func (h *EvidenceHandler) Classify(c *gin.Context) {
	var req dto.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Idea) == "" {
		badRequest(c, "Project idea is required")
		return
	}

	c.JSON(http.StatusOK, classify.Classify(req.Idea))
}
