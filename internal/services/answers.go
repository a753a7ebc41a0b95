package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"talentmatch/ai-service/internal/models"
)

const missingCommentFallback = "no comment provided"

type AnswerService interface {
	ScoreAnswers(ctx context.Context, pairs []models.AnswerPair, jobDescription string) (*models.ScoreAnswersResponse, error)
}

type answerService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewAnswerService(llm LLMService, maxRetries int) AnswerService {
	return &answerService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ScoreAnswers implements AnswerService. All pairs go out in one call and
// the response is matched back by index. A pair whose markers are missing
// from the response scores zero rather than failing the batch.
func (a *answerService) ScoreAnswers(ctx context.Context, pairs []models.AnswerPair, jobDescription string) (*models.ScoreAnswersResponse, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no answers to score")
	}

	messages := []ChatMessage{
		SystemMessage("You are an expert technical interviewer evaluating candidate answers. Follow the requested response format exactly."),
		UserMessage(a.promptBuilder.BuildAnswerScoringPrompt(pairs, jobDescription)),
	}

	response, err := a.llm.ChatWithRetry(ctx, messages, 0.3, a.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to score answers: %w", err)
	}

	scores := make([]models.AnswerScore, 0, len(pairs))
	total := 0

	for i, pair := range pairs {
		score, comment := extractAnswerScore(response, i+1, len(pairs) == 1)
		total += score

		scores = append(scores, models.AnswerScore{
			ID:       pair.ID,
			Question: pair.Question,
			Answer:   pair.Answer,
			Score:    score,
			Comment:  comment,
		})
	}

	return &models.ScoreAnswersResponse{
		Scores:       scores,
		OverallScore: total / len(pairs),
	}, nil
}

// extractAnswerScore pulls the Q<i>_SCORE and Q<i>_COMMENT values for one
// pair. Single-pair responses may omit the index prefix entirely.
func extractAnswerScore(response string, index int, allowBare bool) (int, string) {
	score, scoreFound := findMarkerValue(response, fmt.Sprintf("Q%d_SCORE:", index), allowBare, "SCORE:")
	comment, commentFound := findMarkerValue(response, fmt.Sprintf("Q%d_COMMENT:", index), allowBare, "COMMENT:")

	parsed := 0
	if scoreFound {
		parsed = parseScoreValue(score)
	}

	if !commentFound || strings.TrimSpace(comment) == "" {
		comment = missingCommentFallback
	} else {
		comment = cleanComment(comment)
	}

	return parsed, comment
}

func findMarkerValue(response, marker string, allowBare bool, bareMarker string) (string, bool) {
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		if strings.HasPrefix(upper, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
		if allowBare && strings.HasPrefix(upper, bareMarker) {
			return strings.TrimSpace(trimmed[len(bareMarker):]), true
		}
	}
	return "", false
}

var scoreNumberPattern = regexp.MustCompile(`-?\d+`)

// parseScoreValue keeps the sign so negative scores clamp to the floor
// instead of losing the minus and surviving as positive.
func parseScoreValue(value string) int {
	match := scoreNumberPattern.FindString(value)
	if match == "" {
		return 0
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	return clampInt(score, 0, 10)
}
