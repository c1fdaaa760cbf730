package evidence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// keywordPhrase joins the first two keywords with "and".
func keywordPhrase(primary []string) string {
	return strings.Join(primary[:min(2, len(primary))], " and ")
}

func primaryArticle(p models.Paper, topic string) models.EvidenceArticle {
	return article(p, semanticDefault, fmt.Sprintf(
		"Research paper with %d citations exploring %s methodologies and applications.",
		p.CitationCount, topic))
}

func secondaryArticle(p models.Paper, topic string) models.EvidenceArticle {
	return article(p, openAlexDefault, fmt.Sprintf(
		"Research work with %d citations providing insights into %s applications.",
		p.CitationCount, topic))
}

func supplementArticle(p models.Paper, topic string) models.EvidenceArticle {
	return article(p, p.Provider, fmt.Sprintf(
		"Preprint exploring %s applications.", topic))
}

func termArticle(p models.Paper, term, topic string) models.EvidenceArticle {
	return article(p, semanticDefault, fmt.Sprintf(
		"Research exploring %s with focus on %s applications.", term, topic))
}

// article converts a paper into an evidence article. The summary is the
// abstract cut to 200 characters, or missing when no abstract exists.
func article(p models.Paper, defaultVenue, missing string) models.EvidenceArticle {
	summary := missing
	if abstract := strings.TrimSpace(p.Abstract); abstract != "" {
		summary = models.Truncate(abstract, summaryLen)
	}
	return models.EvidenceArticle{
		Title:   p.Title,
		URL:     p.URL,
		Source:  source(p.Venue, defaultVenue, p.Year),
		Summary: summary,
	}
}

// source renders "{venue} ({year})" with provider and "Recent" defaults.
func source(venue, defaultVenue string, year int) string {
	if venue == "" {
		venue = defaultVenue
	}
	y := recentYear
	if year > 0 {
		y = strconv.Itoa(year)
	}
	return venue + " (" + y + ")"
}
