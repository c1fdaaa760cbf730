package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/github"
	"github.com/raphaelgruber/ideascope/internal/http/dto"
)

type RepoHandler struct {
	repos RepoSearcher
}

func NewRepoHandler(repos RepoSearcher) *RepoHandler {
	return &RepoHandler{repos: repos}
}

func (h *RepoHandler) Search(c *gin.Context) {
	var req dto.RepoSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		badRequest(c, "Query is required")
		return
	}

	repos, err := h.repos.SearchRepositories(c.Request.Context(), req.Query)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			_ = c.Error(err)
			c.JSON(apiErr.StatusCode, dto.ErrorResponse{Error: apiErr.Error()})
			return
		}
		respondError(c, err, "Failed to fetch repositories")
		return
	}

	c.JSON(http.StatusOK, dto.RepoSearchResponse{Repositories: repos})
}
