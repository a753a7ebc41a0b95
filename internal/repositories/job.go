package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"talentmatch/ai-service/internal/models"
)

// DefaultMatchThreshold is used when the caller supplies no minimum
// similarity for candidate ranking.
const DefaultMatchThreshold = 0.5

type JobRepository interface {
	Upsert(jobID, jdText string, embedding []float32) (*models.JobDescription, error)
	FindByJobID(jobID string) (*models.JobDescription, error)
	RankCandidates(jobID string, threshold float64) ([]models.CandidateMatch, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Upsert implements JobRepository.
func (r *jobRepository) Upsert(jobID, jdText string, embedding []float32) (*models.JobDescription, error) {
	vec := pgvector.NewVector(embedding)

	var job models.JobDescription
	err := r.db.Where("job_id = ?", jobID).First(&job).Error
	switch {
	case err == nil:
		job.JDText = jdText
		job.Embedding = vec
		job.UpdatedAt = time.Now()
		if err := r.db.Save(&job).Error; err != nil {
			return nil, fmt.Errorf("failed to update job description: %w", err)
		}
		return &job, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		job = models.JobDescription{
			JobID:     jobID,
			JDText:    jdText,
			Embedding: vec,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := r.db.Create(&job).Error; err != nil {
			return nil, fmt.Errorf("failed to create job description: %w", err)
		}
		return &job, nil
	default:
		return nil, fmt.Errorf("failed to look up job description: %w", err)
	}
}

// FindByJobID implements JobRepository.
func (r *jobRepository) FindByJobID(jobID string) (*models.JobDescription, error) {
	var job models.JobDescription
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &job, nil
}

// RankCandidates implements JobRepository. Similarity is 1 minus the
// cosine distance computed by pgvector's <=> operator; only candidates
// strictly above the threshold are returned, best match first.
func (r *jobRepository) RankCandidates(jobID string, threshold float64) ([]models.CandidateMatch, error) {
	if _, err := r.FindByJobID(jobID); err != nil {
		return nil, err
	}

	matches := []models.CandidateMatch{}
	err := r.db.Raw(`
		SELECT
			c.user_id AS user_id,
			c.resume_text AS resume_text,
			1 - (c.embedding <=> j.embedding) AS similarity
		FROM candidates c
		CROSS JOIN job_descriptions j
		WHERE j.job_id = ?
		AND (1 - (c.embedding <=> j.embedding)) > ?
		ORDER BY similarity DESC`,
		jobID, threshold,
	).Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	return matches, nil
}
