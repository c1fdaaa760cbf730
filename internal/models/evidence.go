package models

// EvidenceArticle is a single research item surfaced as supporting evidence.
// Title is the deduplication key.
type EvidenceArticle struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Source  string `json:"source" yaml:"source"`
	Summary string `json:"summary" yaml:"summary"`
}

// Paper is a provider-neutral bibliographic search hit.
// Zero values mean the provider did not report the field.
type Paper struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract,omitempty"`
	URL           string   `json:"url,omitempty"`
	Venue         string   `json:"venue,omitempty"`
	Year          int      `json:"year,omitempty"`
	CitationCount int      `json:"citationCount"`
	Authors       []string `json:"authors,omitempty"`
	Provider      string   `json:"provider"`
}
