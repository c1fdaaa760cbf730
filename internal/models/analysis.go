// Package models defines the data structures shared across the analysis pipeline.
package models

// Stage selects the prompt/response contract used for an analysis.
type Stage string

const (
	// StageSnapshot is the quick feasibility snapshot.
	StageSnapshot Stage = "stage1"
	// StageExecutive is the detailed executive summary.
	StageExecutive Stage = "stage2"
)

// Difficulty levels accepted in AnalysisResult.DifficultyLevel.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	return s == StageSnapshot || s == StageExecutive
}

// AnalysisResult is the canonical structured feasibility report.
// Slices are never nil once a result has been normalized.
type AnalysisResult struct {
	FeasibilityScore    int      `json:"feasibilityScore" yaml:"feasibilityScore"`
	DifficultyLevel     string   `json:"difficultyLevel" yaml:"difficultyLevel"`
	EstimatedTimeframe  string   `json:"estimatedTimeframe" yaml:"estimatedTimeframe"`
	SuccessProbability  int      `json:"successProbability" yaml:"successProbability"`
	KeyStrengths        []string `json:"keyStrengths" yaml:"keyStrengths"`
	PotentialChallenges []string `json:"potentialChallenges" yaml:"potentialChallenges"`

	DetectedDomain     string `json:"detectedDomain" yaml:"detectedDomain"`
	RequiredExperience string `json:"requiredExperience" yaml:"requiredExperience"`
	EstimatedTimeline  string `json:"estimatedTimeline" yaml:"estimatedTimeline"`

	TechStack       TechStack `json:"techStack" yaml:"techStack"`
	Roadmap         Roadmap   `json:"roadmap" yaml:"roadmap"`
	Recommendations []string  `json:"recommendations" yaml:"recommendations"`
	SimilarProjects []string  `json:"similarProjects" yaml:"similarProjects"`

	// Stage 2 only
	ExecutiveSummary string     `json:"executiveSummary,omitempty" yaml:"executiveSummary,omitempty"`
	HonestAIFeedback string     `json:"honestAiFeedback,omitempty" yaml:"honestAiFeedback,omitempty"`
	QuickWins        []QuickWin `json:"quickWins" yaml:"quickWins"`

	ProjectTitle       string             `json:"projectTitle,omitempty" yaml:"projectTitle,omitempty"`
	ProjectDescription string             `json:"projectDescription,omitempty" yaml:"projectDescription,omitempty"`
	ContextAdjustment  *ContextAdjustment `json:"contextAdjustment,omitempty" yaml:"contextAdjustment,omitempty"`
}

// TechStack groups recommended technologies by layer.
type TechStack struct {
	Frontend []string `json:"frontend" yaml:"frontend"`
	Backend  []string `json:"backend" yaml:"backend"`
	Database []string `json:"database" yaml:"database"`
	Tools    []string `json:"tools" yaml:"tools"`
}

// Roadmap is the fixed three-phase delivery plan.
type Roadmap struct {
	Phase1 Phase `json:"phase1" yaml:"phase1"`
	Phase2 Phase `json:"phase2" yaml:"phase2"`
	Phase3 Phase `json:"phase3" yaml:"phase3"`
}

// Phases returns the roadmap phases in order.
func (r Roadmap) Phases() []Phase {
	return []Phase{r.Phase1, r.Phase2, r.Phase3}
}

// Phase is a single roadmap step.
type Phase struct {
	Title    string   `json:"title" yaml:"title"`
	Duration string   `json:"duration" yaml:"duration"`
	Tasks    []string `json:"tasks" yaml:"tasks"`
}

// QuickWin is a small, immediately actionable step suggested in stage 2.
type QuickWin struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	TimeEstimate string `json:"timeEstimate" yaml:"timeEstimate"`
}

// ContextAdjustment records the complexity correction applied to the scores.
type ContextAdjustment struct {
	Multiplier string `json:"multiplier" yaml:"multiplier"`
	Reason     string `json:"reason" yaml:"reason"`
}
