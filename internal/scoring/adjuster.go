// Package scoring applies deterministic complexity corrections to an analysis.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// Bounds for adjusted scores. They are tighter than the recovery bounds so an
// adjusted report never claims certainty in either direction.
const (
	MinFeasibility = 1
	MaxFeasibility = 10
	MinSuccess     = 15
	MaxSuccess     = 90
)

// Reasons attached to a ContextAdjustment.
const (
	ReasonReduced  = "Reduced for complexity"
	ReasonStandard = "Standard assessment"
)

// Factor scales scores when Phrase occurs in an idea. Values below 1 mark
// complexity, values above 1 mark simplicity.
type Factor struct {
	Phrase     string
	Multiplier float64
}

// Factors is the complexity table. Every matching entry applies.
var Factors = []Factor{
	{"enterprise", 0.7},
	{"distributed", 0.8},
	{"blockchain", 0.8},
	{"machine learning", 0.85},
	{"real-time", 0.85},
	{"microservices", 0.85},
	{"scalable", 0.9},
	{"simple", 1.3},
	{"crud", 1.2},
	{"todo", 1.2},
	{"basic", 1.15},
	{"portfolio", 1.15},
	{"static", 1.1},
}

// Multiplier returns the product of every factor whose phrase occurs in idea.
func Multiplier(idea string) float64 {
	lower := strings.ToLower(idea)
	m := 1.0
	for _, f := range Factors {
		if strings.Contains(lower, f.Phrase) {
			m *= f.Multiplier
		}
	}
	return m
}

// Adjust returns a copy of a with feasibility and success scaled by the
// idea's complexity multiplier and a ContextAdjustment attached.
func Adjust(a models.AnalysisResult, idea string) models.AnalysisResult {
	m := Multiplier(idea)

	a.FeasibilityScore = scale(a.FeasibilityScore, m, MinFeasibility, MaxFeasibility)
	a.SuccessProbability = scale(a.SuccessProbability, m, MinSuccess, MaxSuccess)

	reason := ReasonStandard
	if m < 1 {
		reason = ReasonReduced
	}
	a.ContextAdjustment = &models.ContextAdjustment{
		Multiplier: fmt.Sprintf("%.2f", m),
		Reason:     reason,
	}
	return a
}

func scale(v int, m float64, lo, hi int) int {
	return max(lo, min(hi, int(math.Round(float64(v)*m))))
}
