package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

const tickInterval = time.Second

// errCancelled is returned when the user quits the progress display.
var errCancelled = errors.New("analysis cancelled")

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// stateProgress maps analysis states to bar positions.
var stateProgress = map[string]float64{
	string(service.StatePrompting):          0.1,
	string(service.StateAwaitingCompletion): 0.3,
	string(service.StateRecovering):         0.7,
	string(service.StateAdjusting):          0.9,
	string(service.StateDone):               1.0,
}

// stateLabels are shown next to the bar.
var stateLabels = map[string]string{
	string(service.StatePrompting):          "building prompt",
	string(service.StateAwaitingCompletion): "waiting for the model and gathering evidence",
	string(service.StateRecovering):         "parsing the analysis",
	string(service.StateAdjusting):          "adjusting scores",
	string(service.StateDone):               "done",
	string(service.StateFailed):             "failed",
}

// tickMsg refreshes the elapsed time.
type tickMsg time.Time

// stateMsg carries a state transition from the analysis.
type stateMsg string

// resultMsg carries the finished analysis.
type resultMsg struct {
	report *models.Report
	err    error
}

// analysisRunner runs one analysis, reporting each state through onState.
type analysisRunner func(ctx context.Context, onState func(state string)) (*models.Report, error)

// progressModel is the bubbletea model for a running analysis.
type progressModel struct {
	idea     string
	state    string
	started  time.Time
	now      time.Time
	progress progress.Model
	theme    Theme
	report   *models.Report
	done     bool
	quitting bool
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(idea string, started time.Time) progressModel {
	// Create progress bar with color blend
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		idea:     idea,
		started:  started,
		now:      started,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (start the clock).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tickCmd()

	case stateMsg:
		m.state = string(msg)
		return m, nil

	case resultMsg:
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	if m.state == "" {
		return "Starting analysis...\n"
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.state))
	progressBar := m.progress.ViewAs(stateProgress[m.state])
	elapsed := m.now.Sub(m.started).Truncate(time.Second)
	hint := m.theme.hintStyle().Render("Press q to cancel")

	return fmt.Sprintf("%s %s %s\n%s (%s)\n%s\n", status, progressBar, elapsed, stateLabels[m.state], models.Truncate(m.idea, 60), hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nAnalysis cancelled.\n")
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ Analysis failed: %s\n", m.err))
	}
	return m.theme.completedStyle().Render(fmt.Sprintf("✓ Analysis complete in %s\n", m.now.Sub(m.started).Truncate(time.Second))) + "\n"
}

// tickCmd returns a command that sends a tick after the interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runWithProgress runs the analysis while the interactive progress UI
// renders its states. Quitting the UI cancels the analysis.
func runWithProgress(ctx context.Context, idea string, run analysisRunner) (*models.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(idea, time.Now()))

	go func() {
		report, err := run(ctx, func(state string) { p.Send(stateMsg(state)) })
		p.Send(resultMsg{report: report, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	m, ok := finalModel.(progressModel)
	if !ok {
		return nil, errors.New("progress UI returned an unexpected model")
	}
	if m.quitting {
		return nil, errCancelled
	}
	return m.report, m.err
}
