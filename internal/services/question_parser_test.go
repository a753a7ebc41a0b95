package services

import (
	"testing"
)

func TestParseQuestionResponse_JSON(t *testing.T) {
	content := "```json\n" + `{
  "questions": [
    {"question": "Explain goroutine scheduling", "time_minutes": 5},
    {"question": "How does pgvector index embeddings?", "time_minutes": 8},
    {"question": "What is a context deadline?", "time_minutes": 0}
  ]
}` + "\n```"

	questions := parseQuestionResponse(content, 2, 6)
	if len(questions) != 3 {
		t.Fatalf("len(questions) = %d, want 3", len(questions))
	}

	if questions[0].Question != "Explain goroutine scheduling" || questions[0].EstimatedTimeMinutes != 5 {
		t.Errorf("questions[0] = %+v", questions[0])
	}
	// Above the ceiling gets clamped down; zero gets the default.
	if questions[1].EstimatedTimeMinutes != 6 {
		t.Errorf("questions[1] time = %d, want 6", questions[1].EstimatedTimeMinutes)
	}
	if questions[2].EstimatedTimeMinutes != defaultQuestionMinutes {
		t.Errorf("questions[2] time = %d, want %d", questions[2].EstimatedTimeMinutes, defaultQuestionMinutes)
	}
}

func TestParseQuestionResponse_TextFallback(t *testing.T) {
	content := `QUESTION: Describe your experience with Go
TIME: 10 minutes
QUESTION: How do you handle production incidents?
TIME: 1 minute`

	questions := parseQuestionResponse(content, 2, 6)
	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}

	if questions[0].Question != "Describe your experience with Go" {
		t.Errorf("questions[0].Question = %q", questions[0].Question)
	}
	if questions[0].EstimatedTimeMinutes != 6 {
		t.Errorf("questions[0] time = %d, want clamped 6", questions[0].EstimatedTimeMinutes)
	}
	if questions[1].EstimatedTimeMinutes != 2 {
		t.Errorf("questions[1] time = %d, want clamped 2", questions[1].EstimatedTimeMinutes)
	}
}

func TestParseQuestionResponse_ShortMarkers(t *testing.T) {
	content := "Q: What trade-offs does GORM impose?\nT: 3"

	questions := parseQuestionResponse(content, 2, 6)
	if len(questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(questions))
	}
	if questions[0].Question != "What trade-offs does GORM impose?" {
		t.Errorf("Question = %q", questions[0].Question)
	}
	if questions[0].EstimatedTimeMinutes != 3 {
		t.Errorf("time = %d, want 3", questions[0].EstimatedTimeMinutes)
	}
}

func TestParseQuestionResponse_NumberedList(t *testing.T) {
	content := `1. Tell me about a recent project
3 minutes
2. How do you test database code: unit or integration?
5 minutes`

	questions := parseQuestionResponse(content, 2, 6)
	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}
	if questions[0].Question != "Tell me about a recent project" {
		t.Errorf("questions[0].Question = %q", questions[0].Question)
	}
	if questions[0].EstimatedTimeMinutes != 3 {
		t.Errorf("questions[0] time = %d, want 3", questions[0].EstimatedTimeMinutes)
	}
	// Numbered items keep their full text even when they contain colons.
	if questions[1].Question != "How do you test database code: unit or integration?" {
		t.Errorf("questions[1].Question = %q", questions[1].Question)
	}
}

func TestParseQuestionResponse_TimeRangeUsesFirstNumber(t *testing.T) {
	content := `QUESTION: Walk through a recent migration
TIME: 2-3 minutes`

	questions := parseQuestionResponse(content, 2, 6)
	if len(questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(questions))
	}
	if questions[0].EstimatedTimeMinutes != 2 {
		t.Errorf("time = %d, want first number of the range", questions[0].EstimatedTimeMinutes)
	}
}

func TestParseQuestionResponse_QuestionWithoutTime(t *testing.T) {
	questions := parseQuestionResponse("QUESTION: Why use interfaces?", 2, 6)
	if len(questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(questions))
	}
	if questions[0].EstimatedTimeMinutes != defaultQuestionMinutes {
		t.Errorf("time = %d, want default %d", questions[0].EstimatedTimeMinutes, defaultQuestionMinutes)
	}
}

func TestParseQuestionResponse_Unusable(t *testing.T) {
	if questions := parseQuestionResponse("I cannot help with that.", 2, 6); len(questions) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(questions))
	}
}

func TestIsNumberedItem(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"1. First question", true},
		{"12. Twelfth question", true},
		{"Not numbered", false},
		{"2023 was a year", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isNumberedItem(tt.line); got != tt.want {
			t.Errorf("isNumberedItem(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
