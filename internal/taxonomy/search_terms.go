package taxonomy

import "github.com/raphaelgruber/ideascope/internal/models"

// searchTerms are curated scholarly queries per domain, most specific first.
var searchTerms = map[string][]string{
	"education": {
		"educational technology research", "e-learning effectiveness", "digital learning platforms",
		"learning management systems", "educational software development", "online education research",
		"computer-assisted learning", "educational data mining", "learning analytics", "educational innovation",
	},
	"health": {
		"healthcare technology", "medical informatics research", "digital health solutions",
		"telemedicine systems", "health monitoring technology", "clinical decision support",
		"electronic health records", "medical device innovation", "healthcare analytics",
	},
	"ai_ml": {
		"machine learning applications", "artificial intelligence research", "deep learning systems",
		"neural network architectures", "natural language processing", "computer vision research",
		"predictive modeling", "recommendation systems", "intelligent systems",
	},
	"finance": {
		"financial technology research", "fintech innovation", "digital banking systems",
		"payment technology", "blockchain finance", "financial analytics", "algorithmic trading",
		"risk management systems", "financial inclusion technology",
	},
	"ecommerce": {
		"e-commerce technology", "digital marketplace research", "online retail systems",
		"customer experience optimization", "supply chain technology", "payment processing",
		"inventory management systems", "social commerce platforms",
	},
	"mobile": {
		"mobile application development", "cross-platform development", "mobile user experience",
		"app performance optimization", "mobile security research", "responsive design",
		"mobile commerce", "location-based services",
	},
	"web_dev": {
		"web application development", "frontend frameworks research", "backend systems design",
		"web performance optimization", "progressive web apps", "web accessibility",
		"single page applications", "web security research",
	},
	"iot": {
		"internet of things research", "embedded systems development", "sensor networks",
		"edge computing applications", "smart city technology", "industrial IoT",
		"wearable technology research", "connected device security",
	},
	"blockchain": {
		"blockchain technology research", "distributed ledger systems", "smart contract development",
		"decentralized applications", "cryptocurrency research", "consensus mechanisms",
		"blockchain security", "distributed systems research",
	},
	"security": {
		"cybersecurity research", "information security systems", "threat detection technology",
		"security analytics", "privacy-preserving technology", "authentication systems",
		"vulnerability assessment", "network security research",
	},
	models.GeneralDomain: {
		"software engineering research", "system design patterns", "technology innovation",
		"digital transformation", "human-computer interaction", "software architecture",
		"user experience research", "technology adoption",
	},
}

// maxSearchTerms caps the number of domain queries issued per idea.
const maxSearchTerms = 4

// SearchTerms builds up to four scholarly queries for a domain: the two top
// curated terms, then "<kw> technology research" for the first two primary
// keywords longer than three characters and "<kw> system development" for
// the first one. Unknown domains use the general table.
func SearchTerms(domain string, primary []string) []string {
	terms, ok := searchTerms[domain]
	if !ok {
		terms = searchTerms[models.GeneralDomain]
	}

	var long []string
	for _, kw := range primary {
		if len(kw) > 3 {
			long = append(long, kw)
		}
	}

	out := make([]string, 0, 5)
	out = append(out, terms[:min(2, len(terms))]...)
	for _, kw := range long[:min(2, len(long))] {
		out = append(out, kw+" technology research")
	}
	for _, kw := range long[:min(1, len(long))] {
		out = append(out, kw+" system development")
	}

	if len(out) > maxSearchTerms {
		out = out[:maxSearchTerms]
	}
	return out
}
