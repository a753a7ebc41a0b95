package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"talentmatch/ai-service/internal/models"
)

// ErrParseFailed is terminal: the model never produced a usable JSON
// object within the bounded retries.
var ErrParseFailed = errors.New("failed to parse model response")

// Qualification is one education entry of an extracted record.
type Qualification struct {
	Degree string `json:"degree"`
	Major  string `json:"major"`
	CGPA   string `json:"cgpa"`
}

// StructuredData is the transient normalized record produced from free
// resume or job text. List fields are serialized JSON, reconstructed by
// the Format helpers when the flattened embedding input is built.
type StructuredData struct {
	Title                string
	YearsOfExperience    string
	SkillsJSON           string
	QualificationsJSON   string
	ResponsibilitiesJSON string
	Location             string
}

type ExtractorService interface {
	ExtractResume(ctx context.Context, resumeText string) (*StructuredData, error)
	ExtractJob(ctx context.Context, job models.JobPayload) (*StructuredData, error)
	CondenseJob(ctx context.Context, job models.JobPayload) (string, error)
}

type extractorService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewExtractorService(llm LLMService, maxRetries int) ExtractorService {
	return &extractorService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// extractedRecord matches the JSON shape the extraction prompts demand.
type extractedRecord struct {
	Title             string          `json:"title"`
	YearsOfExperience string          `json:"years_of_experience"`
	Skills            []string        `json:"skills"`
	Qualifications    []Qualification `json:"qualifications"`
	Responsibilities  []string        `json:"responsibilities"`
	Location          string          `json:"location"`
}

// ExtractResume implements ExtractorService.
func (e *extractorService) ExtractResume(ctx context.Context, resumeText string) (*StructuredData, error) {
	return e.extract(ctx, e.promptBuilder.BuildResumeExtractionPrompt(resumeText))
}

// ExtractJob implements ExtractorService.
func (e *extractorService) ExtractJob(ctx context.Context, job models.JobPayload) (*StructuredData, error) {
	return e.extract(ctx, e.promptBuilder.BuildJobExtractionPrompt(job))
}

// extract runs the whole extraction up to maxRetries times; a malformed
// response or missing signal fields triggers another full attempt.
func (e *extractorService) extract(ctx context.Context, prompt string) (*StructuredData, error) {
	messages := []ChatMessage{
		SystemMessage("You are a precise data extraction assistant. You MUST return only valid JSON matching the specified format. Do not include any other text or explanations."),
		UserMessage(prompt),
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		response, err := e.llm.Chat(ctx, messages, 0.3)
		if err != nil {
			lastErr = err
			log.Printf("⚠️  Extraction attempt %d/%d failed: %v", attempt, e.maxRetries, err)
			continue
		}

		record, err := parseExtractionResponse(response)
		if err != nil {
			lastErr = err
			log.Printf("⚠️  Extraction attempt %d/%d returned unusable JSON: %v", attempt, e.maxRetries, err)
			continue
		}

		return record.toStructuredData()
	}

	return nil, fmt.Errorf("%w: %v", ErrParseFailed, lastErr)
}

// CondenseJob implements ExtractorService: one LLM call reducing the job
// posting to the dense keyword line used as the job's embedding input.
func (e *extractorService) CondenseJob(ctx context.Context, job models.JobPayload) (string, error) {
	messages := []ChatMessage{
		SystemMessage(e.promptBuilder.JobCondenseSystemPrompt()),
		UserMessage(e.promptBuilder.BuildJobCondensePrompt(job)),
	}

	response, err := e.llm.Chat(ctx, messages, 0)
	if err != nil {
		return "", fmt.Errorf("failed to format job description: %w", err)
	}

	condensed := strings.Join(strings.Fields(response), " ")
	if condensed == "" {
		return "", fmt.Errorf("failed to format job description: empty result")
	}

	return condensed, nil
}

func parseExtractionResponse(response string) (*extractedRecord, error) {
	jsonStr, err := CleanJSONResponse(response)
	if err != nil {
		return nil, err
	}

	var record extractedRecord
	if err := json.Unmarshal([]byte(jsonStr), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	// Signal fields: a record with neither skills nor a title extracted
	// carries nothing worth embedding.
	if len(record.Skills) == 0 && strings.TrimSpace(record.Title) == "" {
		return nil, fmt.Errorf("no signal fields in extracted record")
	}

	return &record, nil
}

func (r *extractedRecord) toStructuredData() (*StructuredData, error) {
	skills, err := json.Marshal(r.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize skills: %w", err)
	}
	qualifications, err := json.Marshal(r.Qualifications)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize qualifications: %w", err)
	}
	responsibilities, err := json.Marshal(r.Responsibilities)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize responsibilities: %w", err)
	}

	return &StructuredData{
		Title:                r.Title,
		YearsOfExperience:    r.YearsOfExperience,
		SkillsJSON:           string(skills),
		QualificationsJSON:   string(qualifications),
		ResponsibilitiesJSON: string(responsibilities),
		Location:             r.Location,
	}, nil
}

// CleanJSONResponse slices the first-{ to last-} span out of a response
// that may wrap the JSON in prose or markdown fences.
func CleanJSONResponse(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}

	jsonStr := content[start : end+1]
	jsonStr = strings.Trim(jsonStr, "`\"'")

	return jsonStr, nil
}

// FormatSkills renders the serialized skill list space-joined.
func FormatSkills(skillsJSON string) string {
	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return ""
	}
	return strings.Join(skills, " ")
}

// FormatQualifications renders each entry as "degree major CGPA x",
// pipe-joined.
func FormatQualifications(qualificationsJSON string) string {
	var qualifications []Qualification
	if err := json.Unmarshal([]byte(qualificationsJSON), &qualifications); err != nil {
		return ""
	}

	var parts []string
	for _, q := range qualifications {
		fields := []string{}
		if q.Degree != "" {
			fields = append(fields, q.Degree)
		}
		if q.Major != "" {
			fields = append(fields, q.Major)
		}
		if q.CGPA != "" {
			fields = append(fields, "CGPA "+q.CGPA)
		}
		if len(fields) > 0 {
			parts = append(parts, strings.Join(fields, " "))
		}
	}

	return strings.Join(parts, " | ")
}

// FormatResponsibilities renders the serialized list period-joined.
func FormatResponsibilities(responsibilitiesJSON string) string {
	var responsibilities []string
	if err := json.Unmarshal([]byte(responsibilitiesJSON), &responsibilities); err != nil {
		return ""
	}
	return strings.Join(responsibilities, ". ")
}

// Flatten builds the single string that becomes the embedding input. An
// empty result means the extraction produced nothing usable and the
// caller must treat it as a failure.
func (d *StructuredData) Flatten() string {
	parts := []string{
		d.Title,
		d.YearsOfExperience,
		FormatSkills(d.SkillsJSON),
		FormatQualifications(d.QualificationsJSON),
		FormatResponsibilities(d.ResponsibilitiesJSON),
		d.Location,
	}

	var kept []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, " ")
}
