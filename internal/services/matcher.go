package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"talentmatch/ai-service/internal/models"
)

const noEvidenceComment = "No evidence found in CV"

type MatcherService interface {
	AnalyzeMatch(ctx context.Context, job models.JobPayload, cvData string, skillMap map[string]string) (*models.AnalyzeMatchResponse, error)
}

type matcherService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
}

func NewMatcherService(llm LLMService) MatcherService {
	return &matcherService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

// AnalyzeMatch implements MatcherService. One LLM call scores the whole
// pair; the response is parsed into per-section percentages and one row
// per required skill. Every requested skill produces exactly one row even
// when the model's text never mentions it, and a synthetic Overall
// Assessment row closes the list.
func (m *matcherService) AnalyzeMatch(ctx context.Context, job models.JobPayload, cvData string, skillMap map[string]string) (*models.AnalyzeMatchResponse, error) {
	skills := requestedSkills(job, skillMap)

	messages := []ChatMessage{
		SystemMessage(m.promptBuilder.MatchAnalysisSystemPrompt()),
		UserMessage(m.promptBuilder.BuildMatchAnalysisPrompt(job, cvData, skillMap)),
	}

	response, err := m.llm.Chat(ctx, messages, 0.3)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	sections := parseMatchResponse(response)
	blocks := parseSkillBlocks(response)

	requirements := make([]models.RequirementMatch, 0, len(skills)+1)
	for _, skill := range skills {
		expectation := skillMap[skill]
		if expectation == "" {
			expectation = fmt.Sprintf("Required proficiency in %s", skill)
		}

		requirement := models.RequirementMatch{
			Requirement:      skill,
			Expectation:      expectation,
			CandidateProfile: cvData,
		}

		if block, ok := blocks[strings.ToLower(skill)]; ok && block.Found {
			requirement.MatchPercentage = block.Percentage
			requirement.Comment = block.Assessment
			if requirement.Comment == "" {
				requirement.Comment = sections.SkillsComment
			}
		} else {
			// The model skipped this skill: carry the overall skills score
			// so the row is still meaningful.
			requirement.MatchPercentage = sections.SkillsMatch
			requirement.Comment = noEvidenceComment
		}

		requirements = append(requirements, requirement)
	}

	requirements = append(requirements, models.RequirementMatch{
		Requirement:      "Overall Assessment",
		Expectation:      "Job Fit Analysis",
		CandidateProfile: cvData,
		MatchPercentage:  sections.MatchPercentage,
		Comment:          sections.OverallComment,
	})

	return &models.AnalyzeMatchResponse{
		OverallMatch: sections.MatchPercentage,
		Requirements: requirements,
		Analysis:     sections.Analysis,
	}, nil
}

// requestedSkills fixes the row set and its order: the job's skill list
// when present, otherwise the skill map's keys sorted for determinism.
func requestedSkills(job models.JobPayload, skillMap map[string]string) []string {
	if len(job.Skills) > 0 {
		return job.Skills
	}

	skills := make([]string, 0, len(skillMap))
	for skill := range skillMap {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}
