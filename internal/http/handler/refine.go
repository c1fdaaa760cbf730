package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
)

type RefineHandler struct {
	suggester Suggester
}

func NewRefineHandler(suggester Suggester) *RefineHandler {
	return &RefineHandler{suggester: suggester}
}

func (h *RefineHandler) Refine(c *gin.Context) {
	var req dto.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	suggestions, err := h.suggester.Suggest(c.Request.Context(), req.Analysis, req.ProjectTitle, req.ProjectDescription)
	if err != nil {
		respondError(c, err, "Failed to generate refinement suggestions")
		return
	}

	c.JSON(http.StatusOK, dto.RefineResponse{Suggestions: suggestions})
}
