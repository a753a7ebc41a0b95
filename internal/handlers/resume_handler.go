package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/repositories"
	"talentmatch/ai-service/internal/services"
)

const (
	llmTimeout   = 60 * time.Second
	embedTimeout = 30 * time.Second
)

type ResumeHandler struct {
	candidateRepo repositories.CandidateRepository
	pdfParser     services.PDFParserService
	extractor     services.ExtractorService
	embedder      services.EmbeddingService
	maxFileSize   int64
}

func NewResumeHandler(
	candidateRepo repositories.CandidateRepository,
	pdfParser services.PDFParserService,
	extractor services.ExtractorService,
	embedder services.EmbeddingService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		candidateRepo: candidateRepo,
		pdfParser:     pdfParser,
		extractor:     extractor,
		embedder:      embedder,
		maxFileSize:   maxFileSize,
	}
}

// HandleProcessResume accepts either a multipart PDF upload ("file" +
// "userId" fields) or a JSON body with the resume text already extracted.
func (h *ResumeHandler) HandleProcessResume(c *fiber.Ctx) error {
	userID, resumeText, err := h.readResumeInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	extractCtx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	structured, err := h.extractor.ExtractResume(extractCtx, resumeText)
	if err != nil {
		if errors.Is(err, services.ErrParseFailed) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "failed to extract structured data from resume",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("resume extraction failed: %v", err),
		})
	}

	flattened := structured.Flatten()
	if flattened == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "resume contained no extractable content",
		})
	}

	embedCtx, cancel := context.WithTimeout(c.Context(), embedTimeout)
	defer cancel()

	embedding, err := h.embedder.EmbedText(embedCtx, services.NormalizeForEmbedding(flattened))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to embed resume: %v", err),
		})
	}

	if _, err := h.candidateRepo.Upsert(userID, flattened, embedding); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to store candidate: %v", err),
		})
	}

	return c.JSON(models.EmbeddingResponse{
		UserID:    userID,
		Embedding: embedding,
		Status:    "success",
	})
}

func (h *ResumeHandler) readResumeInput(c *fiber.Ctx) (string, string, error) {
	contentType := string(c.Request().Header.ContentType())

	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return h.readPDFUpload(c)
	}

	var req models.ProcessResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", fmt.Errorf("invalid request body")
	}
	if req.UserID == "" || strings.TrimSpace(req.ResumeText) == "" {
		return "", "", fmt.Errorf("userId and resumeText are required")
	}

	return req.UserID, req.ResumeText, nil
}

func (h *ResumeHandler) readPDFUpload(c *fiber.Ctx) (string, string, error) {
	userID := c.FormValue("userId")
	if userID == "" {
		return "", "", fmt.Errorf("userId is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("missing 'file' upload")
	}
	if fileHeader.Size > h.maxFileSize {
		return "", "", fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded file")
	}

	text, err := h.pdfParser.ExtractText(content)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract text from PDF: %v", err)
	}

	return userID, services.CleanText(text), nil
}
