package services

import (
	"fmt"
	"strings"

	"talentmatch/ai-service/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt asks for the normalized resume record as a
// bare JSON object. The field set is fixed; the parser depends on it.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`Extract structured data from this resume.
Return ONLY a JSON object in this exact format, nothing else:
{
  "title": "current or most recent job title",
  "years_of_experience": "5 years",
  "skills": ["skill1", "skill2"],
  "qualifications": [{"degree": "BSc", "major": "Computer Science", "cgpa": "3.5"}],
  "responsibilities": ["responsibility 1", "responsibility 2"],
  "location": "city, country"
}

Rules:
1. Output must be VALID JSON only
2. years_of_experience must be a number followed by "years"
3. Use empty strings or empty arrays for data that is not present
4. No explanations, only JSON

Resume: %s`, resumeText)
}

// BuildJobExtractionPrompt asks for the same record shape for a job
// posting; responsibilities come from the goals/description text.
func (pb *PromptBuilder) BuildJobExtractionPrompt(job models.JobPayload) string {
	return fmt.Sprintf(`Extract structured data from this job posting.
Return ONLY a JSON object in this exact format, nothing else:
{
  "title": "job title",
  "years_of_experience": "5 years",
  "skills": ["skill1", "skill2"],
  "qualifications": [{"degree": "BSc", "major": "Computer Science", "cgpa": ""}],
  "responsibilities": ["responsibility 1", "responsibility 2"],
  "location": "city, country"
}

Rules:
1. Output must be VALID JSON only
2. years_of_experience must be a number followed by "years"
3. Use empty strings or empty arrays for data that is not present
4. No explanations, only JSON

Title: %s
Required experience: %d years
Objective: %s
Goals: %s
Description: %s
Skills: %s`,
		job.Title, job.ExperienceRequired, job.Objective, job.Goals,
		job.Description, strings.Join(job.Skills, ", "))
}

// MatchAnalysisSystemPrompt enforces the response grammar the match parser
// understands. Scores default to zero for missing or invalid CV data.
func (pb *PromptBuilder) MatchAnalysisSystemPrompt() string {
	return `You are an expert HR analyst. Evaluate matches and provide scores.
STRICT RULES:
1. Score a section high ONLY if CV data shows clear evidence
2. If CV data is missing/invalid, score must be 0%
3. ALL comments must be EXACTLY 6 WORDS OR LESS
4. Be extremely concise and accurate
5. Verify skills against actual CV content

FORMAT EXACTLY AS:
Overall: XX%
[6 words or less comment]

Skills Match: XX%
[6 words or less comment]

Experience Match: XX%
[6 words or less comment]

Analysis:
[detailed assessment of the candidate]

Then for EVERY required skill:
Skill: <skill name>
Match Percentage: XX
Assessment: [6 words or less]

NOTE: Default to 0% if CV data is invalid`
}

// BuildMatchAnalysisPrompt formats the job/candidate pair for scoring.
func (pb *PromptBuilder) BuildMatchAnalysisPrompt(job models.JobPayload, cvData string, skillMap map[string]string) string {
	var skillDescriptions []string
	for skill, description := range skillMap {
		skillDescriptions = append(skillDescriptions, fmt.Sprintf("%s: %s", skill, description))
	}

	return fmt.Sprintf(`Analyze the match between this job and candidate.

Job Title: %s
Objective: %s
Goals: %s
Description: %s
Required Skills: %s
Required Experience: %d years

Skill Descriptions:
%s

Candidate CV:
%s`,
		job.Title, job.Objective, job.Goals, job.Description,
		strings.Join(job.Skills, ", "), job.ExperienceRequired,
		strings.Join(skillDescriptions, "\n"), cvData)
}

// BuildQuestionGenerationPrompt demands exactly n question objects for one
// chunk of CV or job text. kind selects the wording ("cv" or "jd").
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(text, kind string, n int) string {
	source := "CV Section"
	focus := "Questions must be specific to the candidate's experience"
	if kind == "jd" {
		source = "Job Description"
		focus = "Questions must match the job requirements"
	}

	return fmt.Sprintf(`Generate %d UNIQUE and DIVERSE technical interview questions based on this %s.
Each question must focus on a DIFFERENT aspect of experience or skills.
Return ONLY a JSON object in this exact format, nothing else:
{
  "questions": [
    {
      "question": "Question text here",
      "time_minutes": 4
    }
  ]
}

Rules:
1. Output must be VALID JSON only
2. %s
3. time_minutes must be between 2-6 based on question complexity:
   - Complex system design questions: 5-6 minutes
   - Technical implementation questions: 4-5 minutes
   - Experience-based questions: 3-4 minutes
   - Tool/technology specific questions: 2-3 minutes
4. NEVER repeat similar questions or topics
5. No explanations, only JSON

%s: %s`, n, source, focus, source, text)
}

// BuildFollowUpPrompt asks for one harder follow-up to an answered question.
func (pb *PromptBuilder) BuildFollowUpPrompt(originalQuestion, providedAnswer string) string {
	return fmt.Sprintf(`Based on this interview question and the candidate's answer, generate exactly 1 harder follow-up question that digs deeper into the same topic.
Return ONLY a JSON object in this exact format, nothing else:
{
  "questions": [
    {
      "question": "Question text here",
      "time_minutes": 4
    }
  ]
}

Rules:
1. Output must be VALID JSON only
2. The follow-up must increase difficulty over the original question
3. time_minutes must be between 3-6
4. No explanations, only JSON

Original Question: %s
Candidate Answer: %s`, originalQuestion, providedAnswer)
}

// BuildAnswerScoringPrompt batches every question/answer pair into one
// call. Markers are indexed so the parser can pair them back up.
func (pb *PromptBuilder) BuildAnswerScoringPrompt(pairs []models.AnswerPair, jobDescription string) string {
	var sb strings.Builder

	sb.WriteString(`Evaluate the following question-answer pairs and score each out of 10.
Format your response EXACTLY as follows, one block per pair:

Q1_SCORE: [number between 0-10]
Q1_COMMENT: [brief explanation of the score]

Q2_SCORE: [number between 0-10]
Q2_COMMENT: [brief explanation of the score]

Scoring criteria:
- Completeness (0-3 points)
- Technical accuracy (0-3 points)
- Communication clarity (0-2 points)
- Practical application (0-2 points)

`)

	fmt.Fprintf(&sb, "Job Description: %s\n\n", jobDescription)

	for i, pair := range pairs {
		fmt.Fprintf(&sb, "Question %d: %s\nCandidate Answer %d: %s\n\n", i+1, pair.Question, i+1, pair.Answer)
	}

	return sb.String()
}

// BuildMultiJobMatchPrompt asks for the single-number match response used
// when ranking one CV against many jobs.
func (pb *PromptBuilder) BuildMultiJobMatchPrompt(cvText, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`You are an AI CV analyzer. Based on the following CV and job description, calculate the match percentage.

CV Text:
%s

Job Title: %s

Job Description:
%s

You MUST respond EXACTLY in this format:
MATCH_PERCENTAGE: [number]

For example:
MATCH_PERCENTAGE: 75

Rules:
1. Provide ONLY a number between 0 and 100
2. Do NOT include any %% symbol
3. Do NOT include any additional text or explanation
4. The number should reflect the overall match between CV and job requirements`,
		cvText, jobTitle, jobDescription)
}

// JobCondenseSystemPrompt reduces a structured job posting to the dense
// keyword string used as the job's embedding input.
func (pb *PromptBuilder) JobCondenseSystemPrompt() string {
	return `Output format must be exactly:
[role] [number] years [keywords from objective] [keywords from goals] [keywords from description] [skills]
Extract only technical terms and numbers. Do not include any punctuation, symbols, or unnecessary formatting. Remove all common words and descriptive phrases. Ensure the output is concise and contains only essential technical details.`
}

// BuildJobCondensePrompt flattens the job fields into the user message for
// the condense call.
func (pb *PromptBuilder) BuildJobCondensePrompt(job models.JobPayload) string {
	return fmt.Sprintf("%s %d %s %s %s %s",
		job.Title, job.ExperienceRequired, job.Objective, job.Goals,
		job.Description, strings.Join(job.Skills, " "))
}
