package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/prompt"
	"github.com/raphaelgruber/ideascope/internal/recovery"
)

// MaxSuggestions caps the number of refinement suggestions returned.
const MaxSuggestions = 7

// RefineService asks the model for improvements to an existing analysis.
type RefineService struct {
	completer   Completer
	temperature float64
}

// NewRefineService creates a refine service.
func NewRefineService(completer Completer, temperature float64) *RefineService {
	if temperature <= 0 || temperature > MaxTemperature {
		temperature = MaxTemperature
	}
	return &RefineService{completer: completer, temperature: temperature}
}

// Suggest returns up to MaxSuggestions improvement suggestions.
func (s *RefineService) Suggest(ctx context.Context, analysis models.AnalysisResult, title, description string) ([]string, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return nil, ErrEmptyIdea
	}

	raw, err := s.completer.Complete(ctx, prompt.BuildRefine(analysis, title, description), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	suggestions, err := recovery.RecoverStrings(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecovery, err)
	}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions, nil
}
