package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/services"
)

// questionGenTimeout is wider than llmTimeout because question generation
// may issue several chunked model calls in sequence.
const questionGenTimeout = 2 * llmTimeout

type QuestionHandler struct {
	questions services.QuestionService
	answers   services.AnswerService
}

func NewQuestionHandler(questions services.QuestionService, answers services.AnswerService) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		answers:   answers,
	}
}

func (h *QuestionHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.QuestionGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.CV) == "" || strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv and jobDescription are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), questionGenTimeout)
	defer cancel()

	questions, err := h.questions.GenerateQuestions(ctx, req.CV, req.JobDescription, req.Count)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "model produced no usable questions",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("question generation failed: %v", err),
		})
	}

	return c.JSON(models.QuestionGenerationResponse{Questions: questions})
}

func (h *QuestionHandler) HandleGenerateFollowUp(c *fiber.Ctx) error {
	var req models.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.OriginalQuestion) == "" || strings.TrimSpace(req.ProvidedAnswer) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "original_question and provided_answer are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	question, err := h.questions.GenerateFollowUp(ctx, req.OriginalQuestion, req.ProvidedAnswer)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "model produced no usable follow-up question",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("follow-up generation failed: %v", err),
		})
	}

	return c.JSON(question)
}

func (h *QuestionHandler) HandleScoreAnswers(c *fiber.Ctx) error {
	var req models.ScoreAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if len(req.Answers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "answers must not be empty",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	result, err := h.answers.ScoreAnswers(ctx, req.Answers, req.JobDescription)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("answer scoring failed: %v", err),
		})
	}

	return c.JSON(result)
}
