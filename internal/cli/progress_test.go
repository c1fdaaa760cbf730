package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

func update(t *testing.T, m progressModel, msg tea.Msg) (progressModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(progressModel)
	require.True(t, ok)
	return pm, cmd
}

func TestProgressModelStates(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newProgressModel(studyIdea, start)
	assert.Equal(t, "Starting analysis...\n", m.renderContent())

	m, cmd := update(t, m, stateMsg(service.StateAwaitingCompletion))
	assert.Nil(t, cmd)
	m, cmd = update(t, m, tickMsg(start.Add(3*time.Second)))
	assert.NotNil(t, cmd)

	view := m.renderContent()
	assert.Contains(t, view, "[AWAITING_COMPLETION]")
	assert.Contains(t, view, "waiting for the model")
	assert.Contains(t, view, "3s")

	report := &models.Report{Idea: studyIdea}
	m, cmd = update(t, m, resultMsg{report: report})
	assert.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Same(t, report, m.report)
	assert.Contains(t, m.renderContent(), "Analysis complete in 3s")

	// Ticks after completion stop the clock.
	_, cmd = update(t, m, tickMsg(start.Add(time.Minute)))
	assert.Nil(t, cmd)
}

func TestProgressModelFailure(t *testing.T) {
	m := newProgressModel(studyIdea, time.Now())
	m, _ = update(t, m, stateMsg(service.StateFailed))
	m, _ = update(t, m, resultMsg{err: errors.New("completion unavailable")})

	assert.ErrorContains(t, m.err, "completion unavailable")
	assert.Contains(t, m.renderContent(), "Analysis failed: completion unavailable")
}

func TestProgressModelQuit(t *testing.T) {
	m := newProgressModel(studyIdea, time.Now())
	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Contains(t, m.renderContent(), "Analysis cancelled.")
}

func TestStateProgressIsMonotonic(t *testing.T) {
	order := []service.State{
		service.StatePrompting,
		service.StateAwaitingCompletion,
		service.StateRecovering,
		service.StateAdjusting,
		service.StateDone,
	}
	prev := 0.0
	for _, s := range order {
		p := stateProgress[string(s)]
		assert.Greater(t, p, prev, s)
		prev = p
	}
	assert.Equal(t, 1.0, prev)
}

func TestPrintReport(t *testing.T) {
	report := &models.Report{
		ID:    "1a2b3c4d",
		Idea:  studyIdea,
		Stage: models.StageExecutive,
		Analysis: models.AnalysisResult{
			FeasibilityScore:   72,
			SuccessProbability: 35,
			DifficultyLevel:    models.DifficultyIntermediate,
			EstimatedTimeframe: "3-4 months",
			KeyStrengths:       []string{"Clear audience"},
			TechStack:          models.TechStack{Frontend: []string{"React Native"}, Backend: []string{"Go"}},
			Roadmap: models.Roadmap{
				Phase1: models.Phase{Title: "MVP", Duration: "4 weeks", Tasks: []string{"Matching"}},
			},
			ExecutiveSummary:  "A focused campus product.",
			QuickWins:         []models.QuickWin{{Title: "User Research", TimeEstimate: "3-5 days"}},
			ContextAdjustment: &models.ContextAdjustment{Multiplier: "0.85", Reason: "Mobile app development"},
		},
		Evidence: []models.EvidenceArticle{{Title: "Peer Learning", Source: "OpenAlex (2022)", URL: "https://openalex.org/W1"}},
	}

	var buf bytes.Buffer
	printReport(&buf, report, "http://ideascope.test/reports/1a2b3c4d")
	out := buf.String()

	for _, want := range []string{
		"Project: A mobile app that helps students find study groups",
		"1a2b3c4d (stage2)",
		"http://ideascope.test/reports/1a2b3c4d",
		"72/100",
		"35%",
		"x0.85, Mobile app development",
		"Executive Summary",
		"• Clear audience",
		"React Native",
		"1. MVP (4 weeks)",
		"   - Matching",
		"• User Research (3-5 days)",
		"1. Peer Learning",
		"https://openalex.org/W1",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Honest Feedback")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]format{"": formatText, "JSON": formatJSON, " yaml ": formatYAML, "text": formatText} {
		got, err := parseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parseFormat("csv")
	assert.Error(t, err)
}
