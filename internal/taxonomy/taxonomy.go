// Package taxonomy holds the static keyword tables used to classify ideas
// and to build evidence search terms.
package taxonomy

import "github.com/raphaelgruber/ideascope/internal/models"

// Entry maps a domain to the phrases that signal it.
// Priority phrases score wordCount × 5 × Weight, secondary phrases score Weight.
type Entry struct {
	Domain    string
	Priority  []string
	Secondary []string
	Weight    int
}

// Entries is the domain taxonomy in declaration order.
// Classification ties are broken by this order.
var Entries = []Entry{
	{
		Domain: "education",
		Priority: []string{
			"edtech", "e-learning", "online learning", "educational technology", "learning management",
			"virtual classroom", "distance learning", "educational platform", "learning app",
			"student portal", "course management", "educational software", "academic platform",
			"digital learning", "smart classroom", "educational analytics", "learning outcomes",
			"study group", "peer learning",
		},
		Secondary: []string{
			"education", "learning", "teaching", "course", "student", "teacher", "instructor",
			"school", "university", "college", "academy", "curriculum", "assessment", "grade",
			"quiz", "exam", "homework", "assignment", "lecture", "tutorial", "study", "classroom",
			"pedagogy", "academic", "educational", "training", "skill development", "knowledge",
		},
		Weight: 3,
	},
	{
		Domain: "health",
		Priority: []string{
			"healthtech", "medical technology", "healthcare platform", "telemedicine", "digital health",
			"health monitoring", "medical app", "healthcare analytics", "patient management",
			"electronic health records", "medical diagnosis", "healthcare ai", "clinical decision",
		},
		Secondary: []string{
			"health", "healthcare", "medical", "patient", "doctor", "hospital", "clinic",
			"diagnosis", "treatment", "therapy", "medicine", "pharmaceutical", "wellness",
			"fitness", "mental health", "physical health", "disease", "symptom", "cure",
		},
		Weight: 3,
	},
	{
		Domain: "ai_ml",
		Priority: []string{
			"artificial intelligence", "machine learning", "deep learning", "neural network",
			"natural language processing", "computer vision", "ai model", "ml algorithm",
			"predictive analytics", "recommendation system", "chatbot", "voice assistant",
		},
		Secondary: []string{
			"ai", "ml", "algorithm", "model", "prediction", "classification", "clustering",
			"tensorflow", "pytorch", "scikit", "keras", "pandas", "numpy", "data mining",
		},
		Weight: 2,
	},
	{
		Domain: "finance",
		Priority: []string{
			"fintech", "financial technology", "digital banking", "payment platform", "blockchain finance",
			"cryptocurrency exchange", "trading platform", "investment app", "financial analytics",
			"robo advisor", "digital wallet", "peer to peer lending", "insurtech",
		},
		Secondary: []string{
			"finance", "banking", "payment", "money", "investment", "trading", "stock",
			"cryptocurrency", "bitcoin", "ethereum", "wallet", "transaction", "loan", "credit",
		},
		Weight: 3,
	},
	{
		Domain: "ecommerce",
		Priority: []string{
			"e-commerce platform", "online marketplace", "digital store", "shopping app",
			"retail technology", "inventory management", "order management", "customer analytics",
			"dropshipping platform", "multi-vendor marketplace", "social commerce",
		},
		Secondary: []string{
			"ecommerce", "shopping", "retail", "store", "marketplace", "cart", "checkout",
			"inventory", "product", "customer", "order", "shipping", "payment", "commerce",
		},
		Weight: 2,
	},
	{
		Domain: "mobile",
		Priority: []string{
			"mobile app", "ios app", "android app", "react native", "flutter app",
			"cross platform", "mobile development", "app store", "mobile ui", "responsive design",
		},
		Secondary: []string{
			"mobile", "app", "ios", "android", "swift", "kotlin", "react native", "flutter",
			"xamarin", "cordova", "phonegap", "mobile first", "responsive",
		},
		Weight: 1,
	},
	{
		Domain: "web_dev",
		Priority: []string{
			"web application", "web platform", "full stack", "frontend development", "backend api",
			"progressive web app", "single page application", "web framework", "rest api",
		},
		Secondary: []string{
			"web", "website", "frontend", "backend", "react", "angular", "vue", "nodejs",
			"javascript", "typescript", "html", "css", "api", "rest", "graphql", "spa", "pwa",
		},
		Weight: 1,
	},
	{
		Domain: "iot",
		Priority: []string{
			"internet of things", "iot platform", "smart home", "connected devices", "sensor network",
			"edge computing", "industrial iot", "smart city", "wearable technology",
		},
		Secondary: []string{
			"iot", "sensor", "device", "embedded", "hardware", "arduino", "raspberry pi",
			"smart", "connected", "wireless", "bluetooth", "wifi", "zigbee",
		},
		Weight: 2,
	},
	{
		Domain: "blockchain",
		Priority: []string{
			"blockchain platform", "smart contract", "decentralized application", "dapp",
			"cryptocurrency platform", "defi protocol", "nft marketplace", "web3 application",
		},
		Secondary: []string{
			"blockchain", "crypto", "cryptocurrency", "bitcoin", "ethereum", "smart contract",
			"defi", "nft", "web3", "solidity", "decentralized", "distributed ledger",
		},
		Weight: 3,
	},
	{
		Domain: "security",
		Priority: []string{
			"cybersecurity platform", "security analytics", "threat detection", "vulnerability assessment",
			"identity management", "access control", "security monitoring", "fraud detection",
		},
		Secondary: []string{
			"security", "cybersecurity", "encryption", "authentication", "authorization",
			"privacy", "vulnerability", "threat", "firewall", "antivirus", "malware",
		},
		Weight: 2,
	},
}

// Lookup returns the taxonomy entry for domain.
func Lookup(domain string) (Entry, bool) {
	for _, e := range Entries {
		if e.Domain == domain {
			return e, true
		}
	}
	return Entry{}, false
}

// Domains lists every known domain id including the general fallback.
func Domains() []string {
	out := make([]string, 0, len(Entries)+1)
	for _, e := range Entries {
		out = append(out, e.Domain)
	}
	return append(out, models.GeneralDomain)
}

// stopwords are filler tokens skipped during keyword extraction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {}, "for": {},
	"from": {}, "has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"that": {}, "the": {}, "to": {}, "was": {}, "will": {}, "with": {}, "would": {}, "could": {},
	"should": {}, "using": {}, "make": {}, "create": {}, "build": {}, "develop": {}, "design": {},
	"implement": {}, "want": {}, "need": {}, "help": {}, "system": {}, "platform": {}, "tool": {},
	"software": {}, "application": {}, "project": {}, "idea": {}, "solution": {},
}

// IsStopword reports whether word is a filler token.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
