package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/services"
)

type ChatHandler struct {
	llm services.LLMService
}

func NewChatHandler(llm services.LLMService) *ChatHandler {
	return &ChatHandler{llm: llm}
}

// HandleChat is a direct passthrough to the model for ad-hoc questions.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), llmTimeout)
	defer cancel()

	response, err := h.llm.Chat(ctx, []services.ChatMessage{
		services.UserMessage(req.Message),
	}, 0.7)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("chat request failed: %v", err),
		})
	}

	return c.JSON(models.ChatResponse{Response: response})
}
