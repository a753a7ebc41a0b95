package models

// Request/response payloads for the HTTP surface. Field names follow the
// consumer-facing contract (camelCase where the frontend expects it).

type ProcessResumeRequest struct {
	UserID     string `json:"userId"`
	ResumeText string `json:"resumeText"`
}

type EmbeddingResponse struct {
	UserID    string    `json:"userId"`
	Embedding []float32 `json:"embedding"`
	Status    string    `json:"status"`
}

type JobPayload struct {
	Title              string   `json:"title"`
	Objective          string   `json:"objective"`
	Goals              string   `json:"goals"`
	Description        string   `json:"jobDescription"`
	Skills             []string `json:"skills"`
	ExperienceRequired int      `json:"experienceRequired"`
}

type ProcessJobRequest struct {
	JobID string     `json:"jobId"`
	Job   JobPayload `json:"job"`
}

type JobEmbeddingResponse struct {
	JobID     string    `json:"jobId"`
	Embedding []float32 `json:"embedding"`
	Status    string    `json:"status"`
}

type CandidateMatch struct {
	UserID     string  `json:"userId"`
	ResumeText string  `json:"resumeText"`
	Similarity float64 `json:"similarity"`
}

type MatchResponse struct {
	JobID      string           `json:"jobId"`
	Candidates []CandidateMatch `json:"candidates"`
}

type AnalyzeMatchRequest struct {
	Job                 JobPayload        `json:"job"`
	CVData              string            `json:"cvData"`
	SkillDescriptionMap map[string]string `json:"skillDescriptionMap,omitempty"`
}

type RequirementMatch struct {
	Requirement      string  `json:"requirement"`
	Expectation      string  `json:"expectation"`
	CandidateProfile string  `json:"candidateProfile"`
	MatchPercentage  float64 `json:"matchPercentage"`
	Comment          string  `json:"comment"`
}

type AnalyzeMatchResponse struct {
	OverallMatch float64            `json:"overallMatch"`
	Requirements []RequirementMatch `json:"requirements"`
	Analysis     string             `json:"analysis,omitempty"`
}

type QuestionGenerateRequest struct {
	CV             string `json:"cv"`
	JobDescription string `json:"jobDescription"`
	Count          int    `json:"count"`
}

type QuestionWithTime struct {
	Question             string `json:"question"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
}

type QuestionGenerationResponse struct {
	Questions []QuestionWithTime `json:"questions"`
}

type FollowUpRequest struct {
	OriginalQuestion string `json:"original_question"`
	ProvidedAnswer   string `json:"provided_answer"`
}

type AnswerPair struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ScoreAnswersRequest struct {
	Answers        []AnswerPair `json:"answers"`
	JobDescription string       `json:"job_description"`
}

type AnswerScore struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Comment  string `json:"comment"`
}

type ScoreAnswersResponse struct {
	Scores       []AnswerScore `json:"scores"`
	OverallScore int           `json:"overall_score"`
}

type JobPosting struct {
	JobID       string `json:"job_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MultiJobMatchRequest struct {
	CVText string       `json:"cvText"`
	Jobs   []JobPosting `json:"jobs"`
}

type JobMatchScore struct {
	JobID      string `json:"job_id"`
	JobTitle   string `json:"job_title"`
	MatchScore string `json:"match_score"`
}

type MultiJobMatchResponse struct {
	Matches []JobMatchScore `json:"matches"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
