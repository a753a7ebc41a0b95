package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/repositories"
	"talentmatch/ai-service/internal/services"
)

type JobHandler struct {
	jobRepo   repositories.JobRepository
	extractor services.ExtractorService
	embedder  services.EmbeddingService
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	extractor services.ExtractorService,
	embedder services.EmbeddingService,
) *JobHandler {
	return &JobHandler{
		jobRepo:   jobRepo,
		extractor: extractor,
		embedder:  embedder,
	}
}

// HandleProcessJob condenses the posting into its keyword form, embeds it
// and upserts the job record keyed by jobId.
func (h *JobHandler) HandleProcessJob(c *fiber.Ctx) error {
	var req models.ProcessJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.JobID == "" || strings.TrimSpace(req.Job.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobId and job.title are required",
		})
	}

	condenseCtx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	condensed, err := h.extractor.CondenseJob(condenseCtx, req.Job)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to condense job description: %v", err),
		})
	}

	embedCtx, cancel := context.WithTimeout(c.Context(), embedTimeout)
	defer cancel()

	embedding, err := h.embedder.EmbedText(embedCtx, services.NormalizeForEmbedding(condensed))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to embed job description: %v", err),
		})
	}

	if _, err := h.jobRepo.Upsert(req.JobID, condensed, embedding); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to store job description: %v", err),
		})
	}

	return c.JSON(models.JobEmbeddingResponse{
		JobID:     req.JobID,
		Embedding: embedding,
		Status:    "success",
	})
}

// HandleMatch returns stored candidates ranked by cosine similarity to the
// job's embedding. An unknown job is 404; a known job with no candidates
// above the threshold is 200 with an empty list.
func (h *JobHandler) HandleMatch(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobId is required",
		})
	}

	threshold := c.QueryFloat("threshold", repositories.DefaultMatchThreshold)
	if threshold < 0 || threshold > 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "threshold must be between 0 and 1",
		})
	}

	candidates, err := h.jobRepo.RankCandidates(jobID, threshold)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("job %s not found", jobID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to rank candidates: %v", err),
		})
	}

	if candidates == nil {
		candidates = []models.CandidateMatch{}
	}

	return c.JSON(models.MatchResponse{
		JobID:      jobID,
		Candidates: candidates,
	})
}
