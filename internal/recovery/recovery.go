// Package recovery turns raw completion text into a normalized AnalysisResult.
//
// Recovery runs an ordered list of parse attempts (direct, then bracket
// extraction with repair) and, when the caller's policy allows it, falls back
// to a deterministic analysis synthesized from the idea itself.
package recovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// ErrRecovery indicates that no parse attempt produced structured data and
// the fallback tier was disabled.
var ErrRecovery = errors.New("unable to recover structured response")

// Policy controls whether the deterministic fallback tier may be used.
type Policy int

const (
	// AllowFallback synthesizes a fallback analysis when both parse tiers fail.
	AllowFallback Policy = iota
	// Strict surfaces a ParseFailure when both parse tiers fail.
	Strict
	// ForceFallback skips parsing and always synthesizes the fallback analysis.
	ForceFallback
)

// String returns the flag/config spelling of p.
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case ForceFallback:
		return "force"
	default:
		return "allow"
	}
}

// ParsePolicy parses "allow", "strict" or "force". Empty means allow.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return AllowFallback, nil
	case "strict":
		return Strict, nil
	case "force":
		return ForceFallback, nil
	default:
		return AllowFallback, fmt.Errorf("invalid fallback policy %q (want allow, strict or force)", s)
	}
}

// Tier names the strategy that produced an outcome.
type Tier string

const (
	TierDirect    Tier = "direct"
	TierExtracted Tier = "extracted"
	TierFallback  Tier = "fallback"
)

// Outcome is a successfully recovered analysis tagged with its tier.
type Outcome struct {
	Analysis models.AnalysisResult
	Tier     Tier
}

// Attempt records why a single parse tier failed.
type Attempt struct {
	Tier Tier
	Err  error
}

// ParseFailure is returned when every parse tier failed under Strict.
// It matches ErrRecovery with errors.Is.
type ParseFailure struct {
	Attempts []Attempt
}

func (e *ParseFailure) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Tier, a.Err))
	}
	return fmt.Sprintf("%v (%s)", ErrRecovery, strings.Join(parts, "; "))
}

func (e *ParseFailure) Unwrap() error {
	return ErrRecovery
}

type objectParser func(raw string) (map[string]any, error)

// tiers are tried in order; the first success wins.
var tiers = []struct {
	tier  Tier
	parse objectParser
}{
	{TierDirect, parseDirect},
	{TierExtracted, parseExtracted},
}

// Recover converts raw completion text into a normalized analysis.
// idea is only consulted by the fallback tier.
func Recover(raw, idea string, policy Policy) (Outcome, error) {
	if policy == ForceFallback {
		return Outcome{Analysis: Fallback(idea), Tier: TierFallback}, nil
	}

	failure := &ParseFailure{}
	for _, t := range tiers {
		obj, err := t.parse(raw)
		if err != nil {
			failure.Attempts = append(failure.Attempts, Attempt{Tier: t.tier, Err: err})
			continue
		}
		return Outcome{Analysis: FromObject(obj), Tier: t.tier}, nil
	}

	if policy == Strict {
		return Outcome{}, failure
	}
	return Outcome{Analysis: Fallback(idea), Tier: TierFallback}, nil
}
