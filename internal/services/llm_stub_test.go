package services

import (
	"context"
)

// stubLLM satisfies LLMService with a test-provided function so service
// tests control the model's responses exactly.
type stubLLM struct {
	chatFn func(messages []ChatMessage, temperature float32) (string, error)
}

func (s *stubLLM) Chat(_ context.Context, messages []ChatMessage, temperature float32) (string, error) {
	return s.chatFn(messages, temperature)
}

func (s *stubLLM) ChatWithRetry(ctx context.Context, messages []ChatMessage, temperature float32, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := s.Chat(ctx, messages, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// respondWith builds a stub that always returns the same response.
func respondWith(response string) *stubLLM {
	return &stubLLM{
		chatFn: func([]ChatMessage, float32) (string, error) {
			return response, nil
		},
	}
}
