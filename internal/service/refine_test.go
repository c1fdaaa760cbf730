package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/recovery"
)

func TestSuggest(t *testing.T) {
	analysis := models.AnalysisResult{
		FeasibilityScore:    6,
		PotentialChallenges: []string{"cold start", "moderation"},
	}

	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "plain array",
			response: `["Narrow the audience", "Ship a web MVP first"]`,
			want:     []string{"Narrow the audience", "Ship a web MVP first"},
		},
		{
			name:     "fenced array",
			response: "```json\n[\"Use an off-the-shelf map SDK\"]\n```",
			want:     []string{"Use an off-the-shelf map SDK"},
		},
		{
			name:     "array inside prose",
			response: "Here you go:\n[\"Partner with one university\",]\nGood luck!",
			want:     []string{"Partner with one university"},
		},
		{
			name:     "capped",
			response: `["1", "2", "3", "4", "5", "6", "7", "8", "9"]`,
			want:     []string{"1", "2", "3", "4", "5", "6", "7"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: tt.response}
			s := NewRefineService(completer, 0.1)

			got, err := s.Suggest(context.Background(), analysis, "Project: Study buddy", "Find study groups")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, completer.prompts, 1)
			assert.Contains(t, completer.prompts[0], "Project: Study buddy")
			assert.Contains(t, completer.prompts[0], "cold start, moderation")
			assert.Equal(t, []float64{0.1}, completer.temperatures)
		})
	}
}

func TestSuggestErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRefineService(&fakeCompleter{}, 0).Suggest(ctx, models.AnalysisResult{}, " ", "")
	assert.ErrorIs(t, err, ErrEmptyIdea)

	_, err = NewRefineService(&fakeCompleter{err: errors.New("quota")}, 0).
		Suggest(ctx, models.AnalysisResult{}, "title", "description")
	assert.ErrorIs(t, err, ErrTransport)

	for _, raw := range []string{"no list here", "[]", `["  ", ""]`} {
		_, err = NewRefineService(&fakeCompleter{response: raw}, 0).
			Suggest(ctx, models.AnalysisResult{}, "title", "description")
		assert.ErrorIs(t, err, ErrRecovery, "raw %q", raw)
		assert.ErrorIs(t, err, recovery.ErrRecovery, "raw %q", raw)
	}
}
