package service

import (
	"errors"
	"fmt"

	"github.com/raphaelgruber/ideascope/internal/recovery"
)

// Sentinel errors returned by the analysis services.
var (
	// ErrEmptyIdea is returned when the idea is blank.
	ErrEmptyIdea = errors.New("idea is required")

	// ErrTransport marks a failed or timed out completion call.
	ErrTransport = errors.New("completion service unavailable")

	// ErrRecovery marks a completion whose text could not be turned into
	// structured data. It also matches recovery.ErrRecovery.
	ErrRecovery = fmt.Errorf("analysis: %w", recovery.ErrRecovery)
)
