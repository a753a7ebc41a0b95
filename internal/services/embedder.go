package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"talentmatch/ai-service/internal/models"
)

type EmbeddingService interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type geminiEmbedder struct {
	client       *genai.Client
	modelName    string
	maxAttempts  int
	initialDelay time.Duration
}

func NewEmbeddingService(apiKey, modelName string, maxAttempts int, initialDelay time.Duration) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbedder{
		client:       client,
		modelName:    modelName,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}, nil
}

// EmbedText implements EmbeddingService.
func (g *geminiEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts implements EmbeddingService. Texts are normalized before the
// call and the request is retried with exponential backoff; exhausting the
// attempts surfaces the last provider error.
func (g *geminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(NormalizeForEmbedding(text), genai.RoleUser))
	}

	dim := int32(models.EmbeddingDim)
	config := &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	}

	var result *genai.EmbedContentResponse
	err := withRetry(ctx, g.maxAttempts, g.initialDelay, func() error {
		var embedErr error
		result, embedErr = g.client.Models.EmbedContent(ctx, g.modelName, contents, config)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding result does not match input: expected %d vectors", len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for _, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("empty embedding result")
		}
		vectors = append(vectors, embedding.Values)
	}

	return vectors, nil
}

// withRetry runs fn up to maxAttempts times, doubling the delay between
// attempts and logging each failure.
func withRetry(ctx context.Context, maxAttempts int, initialDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Printf("⚠️  Embedding attempt %d/%d failed: %v", attempt, maxAttempts, err)
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// NormalizeForEmbedding collapses whitespace and drops repeated sentences
// so boilerplate (headers repeated on every extracted PDF page) does not
// skew the vector.
func NormalizeForEmbedding(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	sentences := strings.Split(text, ".")
	seen := make(map[string]bool, len(sentences))
	var kept []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || seen[sentence] {
			continue
		}
		seen[sentence] = true
		kept = append(kept, sentence)
	}

	return strings.Join(kept, ". ")
}
