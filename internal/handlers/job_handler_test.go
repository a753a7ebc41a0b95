package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"talentmatch/ai-service/internal/models"
	"talentmatch/ai-service/internal/repositories"
)

// stubJobRepo serves canned ranking results keyed by job ID.
type stubJobRepo struct {
	jobs    map[string][]models.CandidateMatch
	lastThr float64
}

func (s *stubJobRepo) Upsert(jobID, jdText string, embedding []float32) (*models.JobDescription, error) {
	return &models.JobDescription{JobID: jobID, JDText: jdText}, nil
}

func (s *stubJobRepo) FindByJobID(jobID string) (*models.JobDescription, error) {
	if _, ok := s.jobs[jobID]; !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.JobDescription{JobID: jobID}, nil
}

func (s *stubJobRepo) RankCandidates(jobID string, threshold float64) ([]models.CandidateMatch, error) {
	s.lastThr = threshold
	matches, ok := s.jobs[jobID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return matches, nil
}

func newMatchTestApp(repo repositories.JobRepository) *fiber.App {
	app := fiber.New()
	handler := NewJobHandler(repo, nil, nil)
	app.Get("/api/v1/match/:jobId", handler.HandleMatch)
	return app
}

func TestHandleMatch_RankedCandidates(t *testing.T) {
	repo := &stubJobRepo{jobs: map[string][]models.CandidateMatch{
		"job-1": {
			{UserID: "alice", ResumeText: "go developer", Similarity: 0.91},
			{UserID: "bob", ResumeText: "data engineer", Similarity: 0.64},
		},
	}}
	app := newMatchTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/match/job-1", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.MatchResponse
	decodeBody(t, resp.Body, &result)

	if result.JobID != "job-1" {
		t.Errorf("JobID = %q", result.JobID)
	}
	if len(result.Candidates) != 2 || result.Candidates[0].UserID != "alice" {
		t.Errorf("Candidates = %+v", result.Candidates)
	}
	if repo.lastThr != repositories.DefaultMatchThreshold {
		t.Errorf("threshold = %v, want default %v", repo.lastThr, repositories.DefaultMatchThreshold)
	}
}

func TestHandleMatch_UnknownJobIs404(t *testing.T) {
	app := newMatchTestApp(&stubJobRepo{jobs: map[string][]models.CandidateMatch{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/match/missing", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleMatch_KnownJobNoCandidatesIsEmptyList(t *testing.T) {
	app := newMatchTestApp(&stubJobRepo{jobs: map[string][]models.CandidateMatch{
		"job-1": nil,
	}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/match/job-1", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.MatchResponse
	decodeBody(t, resp.Body, &result)

	if result.Candidates == nil || len(result.Candidates) != 0 {
		t.Errorf("Candidates = %v, want empty non-nil list", result.Candidates)
	}
}

func TestHandleMatch_CustomThreshold(t *testing.T) {
	repo := &stubJobRepo{jobs: map[string][]models.CandidateMatch{"job-1": nil}}
	app := newMatchTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/match/job-1?threshold=0.8", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if repo.lastThr != 0.8 {
		t.Errorf("threshold = %v, want 0.8", repo.lastThr)
	}
}

func TestHandleMatch_InvalidThreshold(t *testing.T) {
	app := newMatchTestApp(&stubJobRepo{jobs: map[string][]models.CandidateMatch{"job-1": nil}})

	for _, threshold := range []string{"2", "-0.5"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/match/job-1?threshold="+threshold, nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("threshold %s: status = %d, want 400", threshold, resp.StatusCode)
		}
	}
}

func decodeBody(t *testing.T, body io.ReadCloser, v interface{}) {
	t.Helper()
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to decode body %q: %v", data, err)
	}
}
