// Package classify assigns a coarse domain and ranked keywords to free-text ideas.
package classify

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/taxonomy"
)

const (
	maxPrimary   = 5
	maxSecondary = 3

	// priorityFactor multiplies the word count of a matched priority phrase.
	priorityFactor = 5

	// minTokenLen is the shortest token kept from the raw idea.
	minTokenLen = 3
)

var nonWord = regexp.MustCompile(`\W+`)

// Classify scores idea against the taxonomy and extracts ranked keywords.
// The result depends only on idea: no randomness, no I/O.
func Classify(idea string) models.Classification {
	lower := strings.ToLower(idea)
	entry, ok := bestDomain(lower)

	domain := models.GeneralDomain
	var candidates []string
	if ok {
		domain = entry.Domain
		candidates = matchedPhrases(lower, entry)
	}
	candidates = appendTokens(candidates, lower)

	primary := candidates[:min(maxPrimary, len(candidates))]
	rest := candidates[len(primary):]
	secondary := rest[:min(maxSecondary, len(rest))]

	return models.Classification{
		Domain:            domain,
		PrimaryKeywords:   append([]string{}, primary...),
		SecondaryKeywords: append([]string{}, secondary...),
	}
}

// Score returns the taxonomy score of lower-cased text for a single entry.
func Score(lower string, e taxonomy.Entry) int {
	score := 0
	for _, p := range e.Priority {
		if strings.Contains(lower, p) {
			score += len(strings.Fields(p)) * priorityFactor * e.Weight
		}
	}
	for _, s := range e.Secondary {
		if strings.Contains(lower, s) {
			score += e.Weight
		}
	}
	return score
}

// bestDomain picks the entry with the strictly highest score.
// Ties keep the earlier entry; a zero best score means no match.
func bestDomain(lower string) (taxonomy.Entry, bool) {
	var best taxonomy.Entry
	bestScore := 0
	for _, e := range taxonomy.Entries {
		if s := Score(lower, e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best, bestScore > 0
}

// matchedPhrases lists the entry's priority then secondary phrases found in lower.
func matchedPhrases(lower string, e taxonomy.Entry) []string {
	var out []string
	for _, group := range [][]string{e.Priority, e.Secondary} {
		for _, p := range group {
			if strings.Contains(lower, p) && !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// appendTokens adds idea tokens not already covered by a collected keyword.
func appendTokens(keywords []string, lower string) []string {
	for _, tok := range nonWord.Split(lower, -1) {
		if utf8.RuneCountInString(tok) < minTokenLen || taxonomy.IsStopword(tok) {
			continue
		}
		if covered(keywords, tok) {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

func covered(keywords []string, tok string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, tok) {
			return true
		}
	}
	return false
}
