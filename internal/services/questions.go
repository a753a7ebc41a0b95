package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"talentmatch/ai-service/internal/models"
)

// ErrNoQuestions is terminal: neither parsing tier recovered a single
// question from any model response.
var ErrNoQuestions = errors.New("failed to generate any valid questions")

const (
	questionChunkSize  = 1000
	questionTimeMin    = 2
	questionTimeMax    = 6
	followUpTimeMin    = 3
	followUpTimeMax    = 6
	questionsPerCVCall = 2
	questionsPerJDCall = 3
)

type QuestionService interface {
	GenerateQuestions(ctx context.Context, cvText, jobText string, count int) ([]models.QuestionWithTime, error)
	GenerateFollowUp(ctx context.Context, originalQuestion, providedAnswer string) (*models.QuestionWithTime, error)
}

type questionService struct {
	llm           LLMService
	chunker       TextChuncker
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewQuestionService(llm LLMService, maxRetries int) QuestionService {
	return &questionService{
		llm:           llm,
		chunker:       NewTextChunker(),
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// GenerateQuestions implements QuestionService. Half the questions come
// from the CV, the rest from the job description; both texts are chunked
// and each chunk gets a bounded retry loop. Zero recovered questions is a
// terminal error.
func (q *questionService) GenerateQuestions(ctx context.Context, cvText, jobText string, count int) ([]models.QuestionWithTime, error) {
	if count <= 0 {
		count = 3
	}

	cvTarget := count / 2
	jdTarget := count - cvTarget

	cvQuestions := q.generateFromChunks(ctx, cvText, "cv", cvTarget, questionsPerCVCall)
	jdQuestions := q.generateFromChunks(ctx, jobText, "jd", jdTarget, questionsPerJDCall)

	questions := append(cvQuestions, jdQuestions...)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if len(questions) > count {
		questions = questions[:count]
	}

	return questions, nil
}

func (q *questionService) generateFromChunks(ctx context.Context, text, kind string, target, perCall int) []models.QuestionWithTime {
	if target <= 0 {
		return nil
	}

	var questions []models.QuestionWithTime

	for _, chunk := range q.chunker.ChunkText(text, questionChunkSize) {
		if len(questions) >= target {
			break
		}

		want := target - len(questions)
		if want > perCall {
			want = perCall
		}

		messages := []ChatMessage{
			SystemMessage("You are an expert technical interviewer. You MUST return only valid JSON matching the specified format. Do not include any other text or explanations."),
			UserMessage(q.promptBuilder.BuildQuestionGenerationPrompt(chunk, kind, want)),
		}

		for attempt := 1; attempt <= q.maxRetries; attempt++ {
			response, err := q.llm.Chat(ctx, messages, 0.5)
			if err != nil {
				log.Printf("⚠️  Question generation attempt %d/%d failed for %s chunk: %v", attempt, q.maxRetries, kind, err)
				continue
			}

			parsed := parseQuestionResponse(response, questionTimeMin, questionTimeMax)
			if len(parsed) > 0 {
				questions = append(questions, parsed...)
				break
			}
		}
	}

	if len(questions) > target {
		questions = questions[:target]
	}

	return questions
}

// GenerateFollowUp implements QuestionService. Follow-ups carry a tighter
// time floor than first-round questions.
func (q *questionService) GenerateFollowUp(ctx context.Context, originalQuestion, providedAnswer string) (*models.QuestionWithTime, error) {
	messages := []ChatMessage{
		SystemMessage("You are an expert technical interviewer. You MUST return only valid JSON matching the specified format. Do not include any other text or explanations."),
		UserMessage(q.promptBuilder.BuildFollowUpPrompt(originalQuestion, providedAnswer)),
	}

	response, err := q.llm.ChatWithRetry(ctx, messages, 0.5, q.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate follow-up question: %w", err)
	}

	questions := parseQuestionResponse(response, followUpTimeMin, followUpTimeMax)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	return &questions[0], nil
}
