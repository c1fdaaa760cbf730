package models

// GeneralDomain is reported when no taxonomy domain matches an idea.
const GeneralDomain = "general"

// Classification is the result of scoring an idea against the keyword taxonomy.
type Classification struct {
	Domain            string   `json:"domain" yaml:"domain"`
	PrimaryKeywords   []string `json:"primaryKeywords" yaml:"primaryKeywords"`
	SecondaryKeywords []string `json:"secondaryKeywords" yaml:"secondaryKeywords"`
}
