package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"talentmatch/ai-service/internal/models"
)

// ErrNotFound marks lookups of unknown external identifiers. Callers must
// keep it distinct from a valid empty result set.
var ErrNotFound = errors.New("record not found")

type CandidateRepository interface {
	Upsert(userID, resumeText string, embedding []float32) (*models.Candidate, error)
	FindByUserID(userID string) (*models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Upsert implements CandidateRepository. Last write wins: a second
// submission for the same userId overwrites text, vector and timestamp.
func (r *candidateRepository) Upsert(userID, resumeText string, embedding []float32) (*models.Candidate, error) {
	vec := pgvector.NewVector(embedding)

	var candidate models.Candidate
	err := r.db.Where("user_id = ?", userID).First(&candidate).Error
	switch {
	case err == nil:
		candidate.ResumeText = resumeText
		candidate.Embedding = vec
		candidate.UpdatedAt = time.Now()
		if err := r.db.Save(&candidate).Error; err != nil {
			return nil, fmt.Errorf("failed to update candidate: %w", err)
		}
		return &candidate, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		candidate = models.Candidate{
			UserID:     userID,
			ResumeText: resumeText,
			Embedding:  vec,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := r.db.Create(&candidate).Error; err != nil {
			return nil, fmt.Errorf("failed to create candidate: %w", err)
		}
		return &candidate, nil
	default:
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}
}

// FindByUserID implements CandidateRepository.
func (r *candidateRepository) FindByUserID(userID string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("user_id = ?", userID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}
