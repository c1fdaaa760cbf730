package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/service"
)

type AnalysisHandler struct {
	analyzer Analyzer
	reports  *service.ReportService
}

// NewAnalysisHandler creates the analysis handler. reports may be nil.
func NewAnalysisHandler(analyzer Analyzer, reports *service.ReportService) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, reports: reports}
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	request, err := toServiceRequest(req)
	if err != nil {
		respondError(c, err, "invalid analysis request")
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), request)
	if err != nil {
		respondError(c, err, "Failed to analyze project idea")
		return
	}

	c.JSON(http.StatusOK, h.response(report))
}

func (h *AnalysisHandler) response(report *models.Report) dto.ReportResponse {
	resp := dto.ReportResponse{Report: report}
	if h.reports != nil && report.ID != "" {
		resp.ShareURL = h.reports.ShareURL(report.ID)
	}
	return resp
}

// toServiceRequest validates the body fields that are not checked by the
// orchestrator itself.
func toServiceRequest(req dto.AnalyzeRequest) (service.Request, error) {
	if strings.TrimSpace(req.Idea) == "" {
		return service.Request{}, service.ErrEmptyIdea
	}
	out := service.Request{
		Idea:         req.Idea,
		Stage:        models.Stage(req.Stage),
		SkipEvidence: req.SkipEvidence,
		Save:         req.Save,
	}
	if req.Fallback != "" {
		policy, err := recovery.ParsePolicy(req.Fallback)
		if err != nil {
			return service.Request{}, errInvalidPolicy
		}
		out.Policy = &policy
	}
	return out, nil
}
