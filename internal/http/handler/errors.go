package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/db"
	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/prompt"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// errInvalidPolicy is returned for an unknown fallback value.
var errInvalidPolicy = errors.New("fallback must be allow, strict or force")

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyIdea),
		errors.Is(err, prompt.ErrUnknownStage),
		errors.Is(err, errInvalidPolicy):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrRecovery), errors.Is(err, recovery.ErrRecovery):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the user-visible message for err. Internal details
// are only logged.
func messageFor(err error, fallback string) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		switch {
		case errors.Is(err, service.ErrEmptyIdea):
			return "Project idea is required"
		case errors.Is(err, prompt.ErrUnknownStage):
			return "stage must be stage1 or stage2"
		default:
			return errInvalidPolicy.Error()
		}
	case http.StatusNotFound:
		return "Report not found"
	case http.StatusBadGateway:
		return "Completion service unavailable"
	case http.StatusUnprocessableEntity:
		return "Could not parse the analysis response"
	default:
		return fallback
	}
}

// respondError writes the stable {"error": msg} body for err.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
	} else {
		slog.WarnContext(c.Request.Context(), fallback, "status", status, "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{Error: messageFor(err, fallback)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
