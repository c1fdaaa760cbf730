package models

// Repository is a GitHub project related to an idea.
type Repository struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Stars       int    `json:"stars" yaml:"stars"`
	Forks       int    `json:"forks" yaml:"forks"`
	Language    string `json:"language" yaml:"language"`
	URL         string `json:"url" yaml:"url"`
	Owner       string `json:"owner" yaml:"owner"`
}
