package dto

import "github.com/raphaelgruber/ideascope/internal/models"

// Stream event types pushed over /api/analyze/stream.
const (
	EventState  = "state"
	EventResult = "result"
	EventError  = "error"
)

// StreamEvent is a single server message on the analysis stream.
// Exactly one of State, Report or Error is set, matching Type.
type StreamEvent struct {
	Type   string         `json:"type"`
	State  string         `json:"state,omitempty"`
	Report *models.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
	Status int            `json:"status,omitempty"`
}
