package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"talentmatch/ai-service/internal/models"
)

type MultiJobMatchService interface {
	MatchMultipleJobs(ctx context.Context, cvText string, jobs []models.JobPosting) (*models.MultiJobMatchResponse, error)
}

type multiJobMatchService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewMultiJobMatchService(llm LLMService, maxRetries int) MultiJobMatchService {
	return &multiJobMatchService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// MatchMultipleJobs implements MultiJobMatchService. Each job gets its own
// model call; a failed call scores that job 0% instead of failing the
// whole request. Results come back sorted best match first.
func (m *multiJobMatchService) MatchMultipleJobs(ctx context.Context, cvText string, jobs []models.JobPosting) (*models.MultiJobMatchResponse, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs to match against")
	}

	matches := make([]models.JobMatchScore, 0, len(jobs))

	for _, job := range jobs {
		messages := []ChatMessage{
			SystemMessage("You are an AI CV analyzer. Respond only in the exact format requested."),
			UserMessage(m.promptBuilder.BuildMultiJobMatchPrompt(cvText, job.Title, job.Description)),
		}

		score := "0%"
		response, err := m.llm.ChatWithRetry(ctx, messages, 0.2, m.maxRetries)
		if err != nil {
			log.Printf("⚠️  Match scoring failed for job %s: %v", job.JobID, err)
		} else {
			score = parseMatchPercentage(response)
		}

		matches = append(matches, models.JobMatchScore{
			JobID:      job.JobID,
			JobTitle:   job.Title,
			MatchScore: score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matchScoreValue(matches[i].MatchScore) > matchScoreValue(matches[j].MatchScore)
	})

	return &models.MultiJobMatchResponse{Matches: matches}, nil
}

var matchMarkerPattern = regexp.MustCompile(`(?i)MATCH_PERCENTAGE:\s*(\d+)`)

// parseMatchPercentage reads the MATCH_PERCENTAGE marker and falls back to
// the first standalone number in the response. Anything unusable is "0%".
func parseMatchPercentage(response string) string {
	if m := matchMarkerPattern.FindStringSubmatch(response); m != nil {
		return formatMatchScore(m[1])
	}

	if m := scoreNumberPattern.FindString(response); m != "" {
		return formatMatchScore(m)
	}

	return "0%"
}

func formatMatchScore(digits string) string {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return "0%"
	}
	return fmt.Sprintf("%d%%", clampInt(value, 0, 100))
}

func matchScoreValue(score string) int {
	value, err := strconv.Atoi(strings.TrimSuffix(score, "%"))
	if err != nil {
		return 0
	}
	return value
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// ExtractEmail returns the first email address found in the CV text, for
// identifying the candidate behind an uploaded document.
func ExtractEmail(cvText string) string {
	return emailPattern.FindString(cvText)
}
