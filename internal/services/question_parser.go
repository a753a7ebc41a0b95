package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"talentmatch/ai-service/internal/models"
)

const defaultQuestionMinutes = 4

// parseQuestionResponse recovers questions from a model response in two
// tiers: strict JSON first, then a line-oriented scanner for responses
// that ignored the JSON contract. Time estimates are clamped into
// [minTime, maxTime].
func parseQuestionResponse(content string, minTime, maxTime int) []models.QuestionWithTime {
	if questions := parseQuestionJSON(content, minTime, maxTime); len(questions) > 0 {
		return questions
	}
	return parseQuestionText(content, minTime, maxTime)
}

type questionListPayload struct {
	Questions []struct {
		Question    string `json:"question"`
		TimeMinutes int    `json:"time_minutes"`
	} `json:"questions"`
}

func parseQuestionJSON(content string, minTime, maxTime int) []models.QuestionWithTime {
	jsonStr, err := CleanJSONResponse(content)
	if err != nil {
		return nil
	}

	var payload questionListPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil
	}

	var questions []models.QuestionWithTime
	for _, q := range payload.Questions {
		question := strings.TrimSpace(q.Question)
		if question == "" {
			continue
		}

		minutes := q.TimeMinutes
		if minutes == 0 {
			minutes = defaultQuestionMinutes
		}

		questions = append(questions, models.QuestionWithTime{
			Question:             question,
			EstimatedTimeMinutes: clampInt(minutes, minTime, maxTime),
		})
	}

	return questions
}

// parseQuestionText pairs QUESTION:/TIME: (or Q:/T:, or numbered-list)
// markers sequentially. A question without a trailing time marker gets the
// default estimate.
func parseQuestionText(content string, minTime, maxTime int) []models.QuestionWithTime {
	var questions []models.QuestionWithTime

	currentQuestion := ""
	currentTime := 0

	flush := func() {
		if currentQuestion != "" && currentTime > 0 {
			questions = append(questions, models.QuestionWithTime{
				Question:             currentQuestion,
				EstimatedTimeMinutes: clampInt(currentTime, minTime, maxTime),
			})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "QUESTION:") || strings.HasPrefix(line, "Q:") || isNumberedItem(line):
			flush()
			if isNumberedItem(line) {
				currentQuestion = strings.TrimLeft(line, "0123456789")
				currentQuestion = strings.TrimPrefix(currentQuestion, ".")
			} else {
				currentQuestion = line[strings.Index(line, ":")+1:]
			}
			currentQuestion = strings.TrimSpace(currentQuestion)
			currentTime = defaultQuestionMinutes
		case strings.HasPrefix(line, "TIME:") || strings.HasPrefix(line, "T:") || strings.Contains(strings.ToLower(line), "minutes"):
			if digits := firstDigitRun(line); digits != "" {
				if value, err := strconv.Atoi(digits); err == nil {
					currentTime = clampInt(value, minTime, maxTime)
				}
			}
		}
	}
	flush()

	return questions
}

// isNumberedItem recognizes "1. ..." style list entries.
func isNumberedItem(line string) bool {
	if line == "" || line[0] < '0' || line[0] > '9' {
		return false
	}
	prefix := line
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.Contains(prefix, ".")
}

// firstDigitRun returns only the first contiguous number on the line, so
// a range like "2-3 minutes" reads as 2 rather than 23.
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			return s[start:i]
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
