package recovery

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// Score bounds enforced on every normalized analysis.
const (
	MinFeasibility = 1
	MaxFeasibility = 10
	MinSuccess     = 10
	MaxSuccess     = 95

	defaultFeasibility = 5
	defaultSuccess     = 50
	placeholderTBD     = "TBD"
	defaultDomain      = "General"
)

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// FromObject maps a loosely typed JSON object onto an AnalysisResult and
// normalizes it. Missing or mistyped fields are defaulted, never rejected.
func FromObject(obj map[string]any) models.AnalysisResult {
	a := models.AnalysisResult{
		FeasibilityScore:    intField(obj, "feasibilityScore", defaultFeasibility),
		DifficultyLevel:     stringField(obj, "difficultyLevel"),
		EstimatedTimeframe:  stringField(obj, "estimatedTimeframe"),
		SuccessProbability:  intField(obj, "successProbability", defaultSuccess),
		KeyStrengths:        toStrings(obj["keyStrengths"]),
		PotentialChallenges: toStrings(obj["potentialChallenges"]),
		DetectedDomain:      stringField(obj, "detectedDomain"),
		RequiredExperience:  stringField(obj, "requiredExperience"),
		EstimatedTimeline:   stringField(obj, "estimatedTimeline"),
		Recommendations:     toStrings(obj["recommendations"]),
		SimilarProjects:     toStrings(obj["similarProjects"]),
		ExecutiveSummary:    stringField(obj, "executiveSummary"),
		HonestAIFeedback:    stringField(obj, "honestAiFeedback"),
		QuickWins:           quickWins(obj["quickWins"]),
	}

	if stack, ok := obj["techStack"].(map[string]any); ok {
		a.TechStack = models.TechStack{
			Frontend: toStrings(stack["frontend"]),
			Backend:  toStrings(stack["backend"]),
			Database: toStrings(stack["database"]),
			Tools:    toStrings(stack["tools"]),
		}
	}

	phases := roadmapPhases(obj["roadmap"])
	a.Roadmap = models.Roadmap{Phase1: phases[0], Phase2: phases[1], Phase3: phases[2]}

	return Normalize(a)
}

// Normalize enforces the AnalysisResult invariant: slices are non-nil,
// every roadmap phase has a title and duration, categorical fields carry a
// value and scores sit inside their bounds.
func Normalize(a models.AnalysisResult) models.AnalysisResult {
	a.FeasibilityScore = clamp(a.FeasibilityScore, MinFeasibility, MaxFeasibility)
	a.SuccessProbability = clamp(a.SuccessProbability, MinSuccess, MaxSuccess)

	a.DifficultyLevel = canonicalLevel(a.DifficultyLevel, models.DifficultyIntermediate)
	a.RequiredExperience = canonicalLevel(a.RequiredExperience, a.DifficultyLevel)
	if a.DetectedDomain == "" {
		a.DetectedDomain = defaultDomain
	}
	if a.EstimatedTimeframe == "" {
		a.EstimatedTimeframe = placeholderTBD
	}
	if a.EstimatedTimeline == "" {
		a.EstimatedTimeline = a.EstimatedTimeframe
	}

	a.KeyStrengths = nonNil(a.KeyStrengths)
	a.PotentialChallenges = nonNil(a.PotentialChallenges)
	a.Recommendations = nonNil(a.Recommendations)
	a.SimilarProjects = nonNil(a.SimilarProjects)
	if a.QuickWins == nil {
		a.QuickWins = []models.QuickWin{}
	}

	a.TechStack.Frontend = nonNil(a.TechStack.Frontend)
	a.TechStack.Backend = nonNil(a.TechStack.Backend)
	a.TechStack.Database = nonNil(a.TechStack.Database)
	a.TechStack.Tools = nonNil(a.TechStack.Tools)

	a.Roadmap.Phase1 = normalizePhase(a.Roadmap.Phase1, 1)
	a.Roadmap.Phase2 = normalizePhase(a.Roadmap.Phase2, 2)
	a.Roadmap.Phase3 = normalizePhase(a.Roadmap.Phase3, 3)

	return a
}

func normalizePhase(p models.Phase, n int) models.Phase {
	if strings.TrimSpace(p.Title) == "" {
		p.Title = fmt.Sprintf("Phase %d", n)
	}
	if strings.TrimSpace(p.Duration) == "" {
		p.Duration = placeholderTBD
	}
	p.Tasks = nonNil(p.Tasks)
	return p
}

// roadmapPhases accepts {"phase1": {...}, ...} or a plain array of phases.
func roadmapPhases(v any) [3]models.Phase {
	var out [3]models.Phase
	switch r := v.(type) {
	case map[string]any:
		for i := range out {
			if p, ok := r[fmt.Sprintf("phase%d", i+1)].(map[string]any); ok {
				out[i] = phaseFromObject(p)
			}
		}
	case []any:
		for i := 0; i < len(r) && i < len(out); i++ {
			if p, ok := r[i].(map[string]any); ok {
				out[i] = phaseFromObject(p)
			}
		}
	}
	return out
}

func phaseFromObject(obj map[string]any) models.Phase {
	return models.Phase{
		Title:    stringField(obj, "title"),
		Duration: stringField(obj, "duration"),
		Tasks:    toStrings(obj["tasks"]),
	}
}

func quickWins(v any) []models.QuickWin {
	items, ok := v.([]any)
	if !ok {
		return []models.QuickWin{}
	}
	out := make([]models.QuickWin, 0, len(items))
	for _, item := range items {
		switch w := item.(type) {
		case map[string]any:
			qw := models.QuickWin{
				Title:        stringField(w, "title"),
				Description:  stringField(w, "description"),
				TimeEstimate: stringField(w, "timeEstimate"),
			}
			if qw.Title != "" || qw.Description != "" {
				out = append(out, qw)
			}
		case string:
			if s := strings.TrimSpace(w); s != "" {
				out = append(out, models.QuickWin{Title: s})
			}
		}
	}
	return out
}

// canonicalLevel maps case variants onto the three difficulty levels.
func canonicalLevel(s, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "easy":
		return models.DifficultyBeginner
	case "intermediate", "medium", "moderate":
		return models.DifficultyIntermediate
	case "advanced", "hard", "expert":
		return models.DifficultyAdvanced
	default:
		return fallback
	}
}

// intField reads a number that may arrive as a JSON number or as text such
// as "7", "7/10" or "65%".
func intField(obj map[string]any, key string, def int) int {
	switch v := obj[key].(type) {
	case float64:
		return roundInt(v)
	case string:
		m := leadingNumber.FindString(v)
		if m == "" {
			return def
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return def
		}
		return roundInt(f)
	default:
		return def
	}
}

// scoreLimit bounds parsed numbers well beyond any score range so the
// float to int conversion cannot overflow.
const scoreLimit = 1e6

func roundInt(f float64) int {
	return int(math.Round(max(-scoreLimit, min(scoreLimit, f))))
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// toStrings converts an array (or a lone string) into a string slice,
// formatting scalars and dropping blanks, nulls and nested objects.
func toStrings(v any) []string {
	switch items := v.(type) {
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			var s string
			switch x := item.(type) {
			case string:
				s = strings.TrimSpace(x)
			case float64, bool:
				s = fmt.Sprint(x)
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(items); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
