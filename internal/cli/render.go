package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/ideascope/internal/models"
)

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be text, json or yaml", s)
	}
}

// writeOutput encodes v as JSON or YAML, or calls text for the text format.
func writeOutput(w io.Writer, v any, text func(io.Writer)) error {
	f, err := parseFormat(outputFormat)
	if err != nil {
		return err
	}

	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(defaultTheme.Status)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(defaultTheme.Hint)
	goodStyle    = lipgloss.NewStyle().Foreground(defaultTheme.Success).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(defaultTheme.Error).Bold(true)
)

// scoreStyle colors a 0-100 score.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return goodStyle
	case score < 40:
		return badStyle
	default:
		return lipgloss.NewStyle().Bold(true)
	}
}

func printReport(w io.Writer, r *models.Report, shareURL string) {
	a := r.Analysis

	title := a.ProjectTitle
	if title == "" {
		title = models.ProjectTitle(r.Idea)
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	if r.ID != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", labelStyle.Render("Report:"), r.ID, r.Stage)
	}
	if shareURL != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Share:"), shareURL)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %s/100\n", labelStyle.Render("Feasibility:        "), scoreStyle(a.FeasibilityScore).Render(fmt.Sprint(a.FeasibilityScore)))
	fmt.Fprintf(w, "%s %s%%\n", labelStyle.Render("Success probability:"), scoreStyle(a.SuccessProbability).Render(fmt.Sprint(a.SuccessProbability)))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Difficulty:         "), a.DifficultyLevel)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Timeframe:          "), a.EstimatedTimeframe)
	if a.DetectedDomain != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Domain:             "), a.DetectedDomain)
	}
	if a.RequiredExperience != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Experience:         "), a.RequiredExperience)
	}
	if adj := a.ContextAdjustment; adj != nil {
		fmt.Fprintf(w, "%s x%s, %s\n", labelStyle.Render("Adjusted:           "), adj.Multiplier, adj.Reason)
	}

	if a.ExecutiveSummary != "" {
		printSection(w, "Executive Summary")
		fmt.Fprintln(w, a.ExecutiveSummary)
	}

	printList(w, "Key Strengths", a.KeyStrengths)
	printList(w, "Potential Challenges", a.PotentialChallenges)

	if ts := a.TechStack; len(ts.Frontend)+len(ts.Backend)+len(ts.Database)+len(ts.Tools) > 0 {
		printSection(w, "Tech Stack")
		printStackLine(w, "Frontend", ts.Frontend)
		printStackLine(w, "Backend", ts.Backend)
		printStackLine(w, "Database", ts.Database)
		printStackLine(w, "Tools", ts.Tools)
	}

	printSection(w, "Roadmap")
	for i, p := range a.Roadmap.Phases() {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, p.Title, p.Duration)
		for _, task := range p.Tasks {
			fmt.Fprintf(w, "   - %s\n", task)
		}
	}

	printList(w, "Recommendations", a.Recommendations)
	printList(w, "Similar Projects", a.SimilarProjects)

	if len(a.QuickWins) > 0 {
		printSection(w, "Quick Wins")
		for _, qw := range a.QuickWins {
			fmt.Fprintf(w, "• %s (%s)\n  %s\n", qw.Title, qw.TimeEstimate, qw.Description)
		}
	}

	if a.HonestAIFeedback != "" {
		printSection(w, "Honest Feedback")
		fmt.Fprintln(w, a.HonestAIFeedback)
	}

	if len(r.Evidence) > 0 {
		printSection(w, "Research Evidence")
		printArticles(w, r.Evidence)
	}
}

func printSection(w io.Writer, name string) {
	fmt.Fprintf(w, "\n%s\n", headingStyle.Render(name))
}

func printList(w io.Writer, name string, items []string) {
	if len(items) == 0 {
		return
	}
	printSection(w, name)
	for _, item := range items {
		fmt.Fprintf(w, "• %s\n", item)
	}
}

func printStackLine(w io.Writer, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", name+":")), strings.Join(items, ", "))
}

func printArticles(w io.Writer, articles []models.EvidenceArticle) {
	for i, a := range articles {
		fmt.Fprintf(w, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(w, "   %s\n", labelStyle.Render(a.Source))
		if a.Summary != "" {
			fmt.Fprintf(w, "   %s\n", a.Summary)
		}
		if a.URL != "" {
			fmt.Fprintf(w, "   %s\n", a.URL)
		}
	}
}

func printClassification(w io.Writer, c models.Classification) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Domain:   "), titleStyle.Render(c.Domain))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Primary:  "), joinOrNone(c.PrimaryKeywords))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Secondary:"), joinOrNone(c.SecondaryKeywords))
}

func printPapers(w io.Writer, papers []models.Paper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}
	for i, p := range papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		meta := []string{}
		if p.Venue != "" {
			meta = append(meta, p.Venue)
		}
		if p.Year > 0 {
			meta = append(meta, fmt.Sprint(p.Year))
		}
		meta = append(meta, fmt.Sprintf("%d citations", p.CitationCount))
		fmt.Fprintf(w, "   %s\n", labelStyle.Render(strings.Join(meta, " · ")))
		if len(p.Authors) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(p.Authors, ", "))
		}
		if p.URL != "" {
			fmt.Fprintf(w, "   %s\n", p.URL)
		}
	}
}

func printRepositories(w io.Writer, repos []models.Repository) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return
	}
	for i, r := range repos {
		fmt.Fprintf(w, "%d. %s/%s  ★ %d  forks %d  %s\n", i+1, r.Owner, r.Name, r.Stars, r.Forks, labelStyle.Render(r.Language))
		fmt.Fprintf(w, "   %s\n   %s\n", r.Description, r.URL)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
