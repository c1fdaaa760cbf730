package recovery

import (
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// fallbackProfile is a canned analysis selected by substring triggers on the idea.
type fallbackProfile struct {
	triggers []string
	result   models.AnalysisResult
}

var fallbackProfiles = []fallbackProfile{
	{
		triggers: []string{"ai", "machine learning", "artificial intelligence"},
		result: models.AnalysisResult{
			FeasibilityScore:   5,
			DifficultyLevel:    models.DifficultyAdvanced,
			EstimatedTimeframe: "4-6 months",
			SuccessProbability: 45,
			DetectedDomain:     "AI/ML",
			RequiredExperience: models.DifficultyAdvanced,
			KeyStrengths: []string{
				"Strong demand for intelligent features",
				"Mature open-source model ecosystem",
			},
			PotentialChallenges: []string{
				"Collecting enough quality training data",
				"Model accuracy and evaluation",
				"Inference cost at scale",
			},
			TechStack: models.TechStack{
				Frontend: []string{"React", "TypeScript"},
				Backend:  []string{"Python", "FastAPI"},
				Database: []string{"PostgreSQL", "pgvector"},
				Tools:    []string{"PyTorch", "Docker"},
			},
			Roadmap: models.Roadmap{
				Phase1: models.Phase{Title: "Data & Research", Duration: "4-6 weeks", Tasks: []string{"Collect and label data", "Survey existing models", "Define evaluation metrics"}},
				Phase2: models.Phase{Title: "Model & Integration", Duration: "8-10 weeks", Tasks: []string{"Train baseline model", "Build inference API", "Integrate with UI"}},
				Phase3: models.Phase{Title: "Evaluation & Deployment", Duration: "4-6 weeks", Tasks: []string{"Offline and user evaluation", "Monitoring for drift", "Production deployment"}},
			},
			Recommendations: []string{
				"Start from a pretrained model instead of training from scratch",
				"Define a measurable accuracy target before building the UI",
			},
			SimilarProjects: []string{"Hugging Face Spaces demos", "Kaggle competition solutions"},
		},
	},
	{
		triggers: []string{"blockchain", "crypto"},
		result: models.AnalysisResult{
			FeasibilityScore:   4,
			DifficultyLevel:    models.DifficultyAdvanced,
			EstimatedTimeframe: "5-7 months",
			SuccessProbability: 40,
			DetectedDomain:     "Blockchain",
			RequiredExperience: models.DifficultyAdvanced,
			KeyStrengths: []string{
				"Transparent and verifiable records",
				"No single point of control",
			},
			PotentialChallenges: []string{
				"Smart contract security",
				"Transaction fees and throughput",
				"Regulatory uncertainty",
			},
			TechStack: models.TechStack{
				Frontend: []string{"React", "ethers.js"},
				Backend:  []string{"Node.js", "Solidity"},
				Database: []string{"PostgreSQL", "IPFS"},
				Tools:    []string{"Hardhat", "OpenZeppelin"},
			},
			Roadmap: models.Roadmap{
				Phase1: models.Phase{Title: "Protocol Design", Duration: "4-6 weeks", Tasks: []string{"Choose chain and token model", "Design contract interfaces", "Threat modelling"}},
				Phase2: models.Phase{Title: "Contracts & dApp", Duration: "10-12 weeks", Tasks: []string{"Implement contracts", "Build wallet-connected UI", "Testnet deployment"}},
				Phase3: models.Phase{Title: "Audit & Launch", Duration: "6-8 weeks", Tasks: []string{"External security audit", "Bug bounty", "Mainnet launch"}},
			},
			Recommendations: []string{
				"Validate that the problem needs a blockchain at all",
				"Budget for an external audit before mainnet",
			},
			SimilarProjects: []string{"OpenSea", "Uniswap"},
		},
	},
}

var defaultProfile = models.AnalysisResult{
	FeasibilityScore:   7,
	DifficultyLevel:    models.DifficultyIntermediate,
	EstimatedTimeframe: "2-3 months",
	SuccessProbability: 70,
	DetectedDomain:     "Web Development",
	RequiredExperience: models.DifficultyIntermediate,
	KeyStrengths: []string{
		"Well-understood problem space",
		"Mature frameworks and hosting options",
	},
	PotentialChallenges: []string{
		"Differentiating from existing products",
		"User acquisition",
		"Scope creep",
	},
	TechStack: models.TechStack{
		Frontend: []string{"React", "Next.js"},
		Backend:  []string{"Node.js", "Express"},
		Database: []string{"PostgreSQL"},
		Tools:    []string{"Git", "Docker"},
	},
	Roadmap: models.Roadmap{
		Phase1: models.Phase{Title: "Research & Planning", Duration: "2-3 weeks", Tasks: []string{"Interview potential users", "Define MVP scope", "Sketch data model"}},
		Phase2: models.Phase{Title: "Implementation", Duration: "6-8 weeks", Tasks: []string{"Build core features", "Set up authentication", "Continuous integration"}},
		Phase3: models.Phase{Title: "Testing & Deployment", Duration: "2-3 weeks", Tasks: []string{"End-to-end testing", "Deploy to production", "Collect feedback"}},
	},
	Recommendations: []string{
		"Ship a minimal version early and iterate on feedback",
		"Reuse hosted services for auth and payments",
	},
	SimilarProjects: []string{"Notion", "Trello"},
}

// Fallback synthesizes an analysis from simple substring checks on the idea.
// It never fails and never consults model output.
func Fallback(idea string) models.AnalysisResult {
	lower := strings.ToLower(idea)
	for _, p := range fallbackProfiles {
		for _, trigger := range p.triggers {
			if strings.Contains(lower, trigger) {
				return Normalize(clone(p.result))
			}
		}
	}
	return Normalize(clone(defaultProfile))
}

// clone copies the slices of a profile so callers cannot mutate the table.
func clone(a models.AnalysisResult) models.AnalysisResult {
	a.KeyStrengths = append([]string(nil), a.KeyStrengths...)
	a.PotentialChallenges = append([]string(nil), a.PotentialChallenges...)
	a.Recommendations = append([]string(nil), a.Recommendations...)
	a.SimilarProjects = append([]string(nil), a.SimilarProjects...)
	a.TechStack.Frontend = append([]string(nil), a.TechStack.Frontend...)
	a.TechStack.Backend = append([]string(nil), a.TechStack.Backend...)
	a.TechStack.Database = append([]string(nil), a.TechStack.Database...)
	a.TechStack.Tools = append([]string(nil), a.TechStack.Tools...)
	a.Roadmap.Phase1.Tasks = append([]string(nil), a.Roadmap.Phase1.Tasks...)
	a.Roadmap.Phase2.Tasks = append([]string(nil), a.Roadmap.Phase2.Tasks...)
	a.Roadmap.Phase3.Tasks = append([]string(nil), a.Roadmap.Phase3.Tasks...)
	return a
}
