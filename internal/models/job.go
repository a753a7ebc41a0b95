package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type JobDescription struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	JobID     string          `gorm:"type:text;uniqueIndex;not null" json:"job_id"`
	JDText    string          `gorm:"type:text;not null" json:"jd_text"`
	Embedding pgvector.Vector `gorm:"type:vector(384)" json:"embedding"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
