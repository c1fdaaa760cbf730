// Package prompt renders the instruction text sent to the completion service.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// ErrUnknownStage is returned for a stage without a template.
var ErrUnknownStage = errors.New("unknown stage")

// Build renders the template for stage with idea interpolated verbatim.
func Build(stage models.Stage, idea string) (string, error) {
	switch stage {
	case models.StageSnapshot:
		return fmt.Sprintf(snapshotTemplate, idea), nil
	case models.StageExecutive:
		return fmt.Sprintf(executiveTemplate, idea), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
}

// BuildRefine renders the improvement-suggestion prompt for an existing analysis.
func BuildRefine(analysis models.AnalysisResult, title, description string) string {
	return fmt.Sprintf(refineTemplate,
		title,
		description,
		analysis.FeasibilityScore,
		strings.Join(analysis.PotentialChallenges, ", "),
	)
}

const sharedShape = `{
  "feasibilityScore": number (1-10),
  "difficultyLevel": "Beginner" | "Intermediate" | "Advanced",
  "estimatedTimeframe": "string",
  "successProbability": number (10-95),
  "detectedDomain": "string",
  "requiredExperience": "Beginner" | "Intermediate" | "Advanced",
  "estimatedTimeline": "string",
  "keyStrengths": ["strength1", "strength2", "strength3"],
  "potentialChallenges": ["challenge1", "challenge2", "challenge3"],
  "techStack": {
    "frontend": ["tech1", "tech2"],
    "backend": ["tech1", "tech2"],
    "database": ["tech1", "tech2"],
    "tools": ["tool1", "tool2"]
  },
  "roadmap": {
    "phase1": {"title": "Research & Planning", "duration": "string", "tasks": ["task1", "task2", "task3"]},
    "phase2": {"title": "Implementation", "duration": "string", "tasks": ["task1", "task2", "task3"]},
    "phase3": {"title": "Testing & Deployment", "duration": "string", "tasks": ["task1", "task2", "task3"]}
  },
  "recommendations": ["rec1", "rec2", "rec3"],
  "similarProjects": ["project1", "project2", "project3"]`

const rubric = `Scoring rubric:
- feasibilityScore 8-10: well-understood problem, mature tooling, buildable by one developer.
- feasibilityScore 5-7: moderate integration work or one unfamiliar technology.
- feasibilityScore 1-4: research-grade components, regulated data, or large distributed systems.
- successProbability must be consistent with feasibilityScore and never above 95.
Timeline rules:
- Add a 20%% buffer to every phase duration for testing and rework.
- Ideas involving machine learning, blockchain or real-time systems need at least 3 months.
- Express durations in weeks or months, never in days for phases longer than two weeks.`

var snapshotTemplate = `You are an expert AI consultant for Computer Science projects. Analyze the following project idea and provide a quick feasibility snapshot.

Project Idea: %s

Determine the domain, required experience and realistic timeline yourself.

` + rubric + `

Respond in the following JSON format:
` + sharedShape + `
}

Provide only the JSON response, no additional text.`

var executiveTemplate = `You are a senior technical advisor preparing an executive summary for a software project idea. Be candid: overly optimistic assessments harm the reader.

Project Idea: %s

Determine the domain, required experience and realistic timeline yourself.

` + rubric + `

Respond in the following JSON format:
` + sharedShape + `,
  "executiveSummary": "3-5 sentence summary for a non-technical stakeholder",
  "honestAiFeedback": "direct assessment of the weakest assumptions in the idea",
  "quickWins": [
    {"title": "string", "description": "string", "timeEstimate": "string"}
  ]
}

Provide only the JSON response, no additional text.`

const refineTemplate = `You are an expert AI consultant specializing in project improvement. Based on the current project analysis, provide specific, actionable suggestions for improvement.

Current Project: %s
Description: %s
Current Feasibility Score: %d/10
Current Challenges: %s

Provide 5-7 specific improvement suggestions that could:
1. Increase feasibility score
2. Reduce technical complexity
3. Improve market viability
4. Address current challenges
5. Enhance user experience
6. Optimize development timeline

Format as a JSON array of strings:
["suggestion 1", "suggestion 2", "suggestion 3", ...]

Focus on practical, implementable improvements. Be specific and actionable.`
