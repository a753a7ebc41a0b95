package services

import (
	"context"
	"errors"
	"testing"

	"talentmatch/ai-service/internal/models"
)

func TestAnalyzeMatch_RowPerSkill(t *testing.T) {
	matcher := NewMatcherService(respondWith(sampleMatchResponse))

	job := models.JobPayload{
		Title:  "Backend Engineer",
		Skills: []string{"Go", "Kubernetes", "Terraform"},
	}

	result, err := matcher.AnalyzeMatch(context.Background(), job, "cv text", nil)
	if err != nil {
		t.Fatalf("AnalyzeMatch() error = %v", err)
	}

	// One row per requested skill plus the overall assessment row.
	if len(result.Requirements) != 4 {
		t.Fatalf("len(Requirements) = %d, want 4", len(result.Requirements))
	}

	if result.OverallMatch != 75 {
		t.Errorf("OverallMatch = %v, want 75", result.OverallMatch)
	}

	goRow := result.Requirements[0]
	if goRow.Requirement != "Go" || goRow.MatchPercentage != 85 {
		t.Errorf("Go row = %+v, want 85%%", goRow)
	}

	// Terraform never appears in the response: it carries the section
	// score and the no-evidence comment.
	tfRow := result.Requirements[2]
	if tfRow.Requirement != "Terraform" {
		t.Fatalf("Requirements[2] = %q, want Terraform", tfRow.Requirement)
	}
	if tfRow.MatchPercentage != 70 {
		t.Errorf("Terraform MatchPercentage = %v, want section score 70", tfRow.MatchPercentage)
	}
	if tfRow.Comment != noEvidenceComment {
		t.Errorf("Terraform Comment = %q, want %q", tfRow.Comment, noEvidenceComment)
	}

	last := result.Requirements[3]
	if last.Requirement != "Overall Assessment" || last.Expectation != "Job Fit Analysis" {
		t.Errorf("final row = %+v, want synthetic overall row", last)
	}
	if last.MatchPercentage != 75 {
		t.Errorf("overall row MatchPercentage = %v, want 75", last.MatchPercentage)
	}
}

func TestAnalyzeMatch_SkillMapOrder(t *testing.T) {
	matcher := NewMatcherService(respondWith(sampleMatchResponse))

	skillMap := map[string]string{
		"Kubernetes": "cluster operations",
		"Go":         "backend services",
	}

	result, err := matcher.AnalyzeMatch(context.Background(), models.JobPayload{}, "cv text", skillMap)
	if err != nil {
		t.Fatalf("AnalyzeMatch() error = %v", err)
	}

	if len(result.Requirements) != 3 {
		t.Fatalf("len(Requirements) = %d, want 3", len(result.Requirements))
	}

	// Without a job skill list the map keys are sorted for determinism.
	if result.Requirements[0].Requirement != "Go" || result.Requirements[1].Requirement != "Kubernetes" {
		t.Errorf("rows = %q, %q; want sorted Go, Kubernetes",
			result.Requirements[0].Requirement, result.Requirements[1].Requirement)
	}

	if result.Requirements[0].Expectation != "backend services" {
		t.Errorf("Go Expectation = %q, want skill map description", result.Requirements[0].Expectation)
	}
}

func TestAnalyzeMatch_LLMFailure(t *testing.T) {
	wantErr := errors.New("model unavailable")
	matcher := NewMatcherService(&stubLLM{
		chatFn: func([]ChatMessage, float32) (string, error) {
			return "", wantErr
		},
	})

	_, err := matcher.AnalyzeMatch(context.Background(), models.JobPayload{Skills: []string{"Go"}}, "cv", nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("AnalyzeMatch() error = %v, want wrapped %v", err, wantErr)
	}
}
