package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is fixed for the lifetime of the store; it matches
// the sentence-transformer model used by the embedding provider.
const EmbeddingDim = 384

type Candidate struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	UserID     string          `gorm:"type:text;uniqueIndex;not null" json:"user_id"`
	ResumeText string          `gorm:"type:text;not null" json:"resume_text"`
	Embedding  pgvector.Vector `gorm:"type:vector(384)" json:"embedding"`
	CreatedAt  time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
