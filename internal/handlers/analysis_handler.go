package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/services"
)

type AnalysisHandler struct {
	matcher    services.MatcherService
	multiMatch services.MultiJobMatchService
}

func NewAnalysisHandler(matcher services.MatcherService, multiMatch services.MultiJobMatchService) *AnalysisHandler {
	return &AnalysisHandler{
		matcher:    matcher,
		multiMatch: multiMatch,
	}
}

// HandleAnalyzeMatch scores one candidate against one job, producing a
// per-requirement breakdown plus the overall assessment row.
func (h *AnalysisHandler) HandleAnalyzeMatch(c *fiber.Ctx) error {
	var req models.AnalyzeMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.CVData) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cvData is required",
		})
	}
	if len(req.Job.Skills) == 0 && len(req.SkillDescriptionMap) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job.skills or skillDescriptionMap is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	result, err := h.matcher.AnalyzeMatch(ctx, req.Job, req.CVData, req.SkillDescriptionMap)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("match analysis failed: %v", err),
		})
	}

	return c.JSON(result)
}

// HandleMatchMultipleJobs ranks one CV against a batch of job postings.
func (h *AnalysisHandler) HandleMatchMultipleJobs(c *fiber.Ctx) error {
	var req models.MultiJobMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.CVText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cvText is required",
		})
	}
	if len(req.Jobs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobs must not be empty",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	result, err := h.multiMatch.MatchMultipleJobs(ctx, req.CVText, req.Jobs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("multi-job matching failed: %v", err),
		})
	}

	return c.JSON(result)
}
