package services

import "strings"

type TextChuncker interface {
	ChunkText(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChuncker {
	return &textChunker{}
}

// ChunkText implements TextChuncker. Words are packed greedily into chunks
// of at most maxChunkSize characters so long inputs can be processed in
// separate model calls.
func (tc *textChunker) ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}

	words := strings.Fields(text)

	var chunks []string
	var currentChunk []string
	currentLength := 0

	for _, word := range words {
		if currentLength+len(word) > maxChunkSize && len(currentChunk) > 0 {
			chunks = append(chunks, strings.Join(currentChunk, " "))
			currentChunk = []string{word}
			currentLength = len(word)
		} else {
			currentChunk = append(currentChunk, word)
			currentLength += len(word) + 1
		}
	}

	if len(currentChunk) > 0 {
		chunks = append(chunks, strings.Join(currentChunk, " "))
	}

	return chunks
}
