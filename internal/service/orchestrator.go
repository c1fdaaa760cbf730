// Package service provides the analysis pipeline and report history operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/prompt"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/scoring"
)

// State is a step of a single analysis.
type State string

const (
	StatePrompting          State = "PROMPTING"
	StateAwaitingCompletion State = "AWAITING_COMPLETION"
	StateRecovering         State = "RECOVERING"
	StateAdjusting          State = "ADJUSTING"
	StateDone               State = "DONE"
	StateFailed             State = "FAILED"
)

const (
	// MaxTemperature is the highest sampling temperature sent to the model.
	MaxTemperature = 0.2

	// DefaultCompletionTimeout bounds a single completion call.
	DefaultCompletionTimeout = 45 * time.Second
)

// defaultQuickWins are used for stage 2 when the model returns none.
var defaultQuickWins = []models.QuickWin{
	{
		Title:        "Start with MVP",
		Description:  "Focus on core features first to validate the concept quickly",
		TimeEstimate: "1-2 weeks",
	},
	{
		Title:        "User Research",
		Description:  "Conduct interviews with 5-10 potential users to validate assumptions",
		TimeEstimate: "3-5 days",
	},
}

// Completer turns a prompt into raw completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// EvidenceFetcher gathers supporting articles for an idea. It never fails;
// degraded results are returned instead.
type EvidenceFetcher interface {
	FetchEvidence(ctx context.Context, idea string) []models.EvidenceArticle
}

// Request is a single analysis request.
type Request struct {
	Idea  string
	Stage models.Stage // empty means stage1

	// Policy overrides the configured recovery policy for this request.
	Policy *recovery.Policy

	SkipEvidence bool
	Save         bool

	// Observer receives every state transition, in order.
	Observer func(State)
}

// Options configures an Orchestrator. Zero values select defaults.
type Options struct {
	Temperature       float64
	CompletionTimeout time.Duration
	Policies          map[models.Stage]recovery.Policy
	Reports           *ReportService
	Logger            *slog.Logger
}

// Orchestrator runs the analysis pipeline: prompt, completion, recovery,
// score adjustment and evidence collection.
type Orchestrator struct {
	completer   Completer
	evidence    EvidenceFetcher
	temperature float64
	timeout     time.Duration
	policies    map[models.Stage]recovery.Policy
	reports     *ReportService
	logger      *slog.Logger
}

// NewOrchestrator creates an orchestrator. evidence may be nil.
func NewOrchestrator(completer Completer, evidence EvidenceFetcher, opts Options) *Orchestrator {
	o := &Orchestrator{
		completer:   completer,
		evidence:    evidence,
		temperature: opts.Temperature,
		timeout:     opts.CompletionTimeout,
		policies:    opts.Policies,
		reports:     opts.Reports,
		logger:      opts.Logger,
	}
	if o.temperature <= 0 || o.temperature > MaxTemperature {
		o.temperature = MaxTemperature
	}
	if o.timeout <= 0 {
		o.timeout = DefaultCompletionTimeout
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Analyze runs the full pipeline for req. On failure no partial report is
// returned: errors match ErrEmptyIdea, prompt.ErrUnknownStage, ErrTransport
// or ErrRecovery.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*models.Report, error) {
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	stage := req.Stage
	if stage == "" {
		stage = models.StageSnapshot
	}
	notify := req.Observer
	if notify == nil {
		notify = func(State) {}
	}

	notify(StatePrompting)
	text, err := prompt.Build(stage, idea)
	if err != nil {
		notify(StateFailed)
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	// Evidence runs alongside the completion call.
	evCtx, cancelEvidence := context.WithCancel(ctx)
	defer cancelEvidence()
	evidenceCh := make(chan []models.EvidenceArticle, 1)
	if o.evidence != nil && !req.SkipEvidence {
		go func() {
			evidenceCh <- o.evidence.FetchEvidence(evCtx, idea)
		}()
	} else {
		evidenceCh <- []models.EvidenceArticle{}
	}
	abort := func() {
		cancelEvidence()
		<-evidenceCh
		notify(StateFailed)
	}

	notify(StateAwaitingCompletion)
	raw, err := o.complete(ctx, text)
	if err != nil {
		abort()
		o.logger.Warn("completion failed", "stage", stage, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	notify(StateRecovering)
	outcome, err := recovery.Recover(raw, idea, o.policy(stage, req.Policy))
	if err != nil {
		abort()
		o.logger.Warn("response recovery failed", "stage", stage, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRecovery, err)
	}
	if outcome.Tier != recovery.TierDirect {
		o.logger.Info("response recovered", "stage", stage, "tier", outcome.Tier)
	}

	notify(StateAdjusting)
	analysis := scoring.Adjust(outcome.Analysis, idea)
	analysis.ProjectTitle = models.ProjectTitle(idea)
	analysis.ProjectDescription = idea
	if stage == models.StageExecutive && len(analysis.QuickWins) == 0 {
		analysis.QuickWins = append([]models.QuickWin(nil), defaultQuickWins...)
	}

	report := &models.Report{
		Idea:      idea,
		Stage:     stage,
		Analysis:  analysis,
		Evidence:  <-evidenceCh,
		Tier:      string(outcome.Tier),
		CreatedAt: time.Now().UTC(),
	}

	if req.Save && o.reports != nil {
		if err := o.reports.Save(ctx, report); err != nil {
			o.logger.Warn("failed to save report", "error", err)
		}
	}

	notify(StateDone)
	return report, nil
}

func (o *Orchestrator) complete(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.completer.Complete(ctx, text, o.temperature)
}

func (o *Orchestrator) policy(stage models.Stage, override *recovery.Policy) recovery.Policy {
	if override != nil {
		return *override
	}
	if p, ok := o.policies[stage]; ok {
		return p
	}
	return recovery.AllowFallback
}
