package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const questionJSONResponse = `{
  "questions": [
    {"question": "Explain how you structure Go services", "time_minutes": 4},
    {"question": "How do you tune Postgres queries?", "time_minutes": 5}
  ]
}`

func TestGenerateQuestions_SplitsBetweenSources(t *testing.T) {
	var cvCalls, jdCalls int
	service := NewQuestionService(&stubLLM{
		chatFn: func(messages []ChatMessage, _ float32) (string, error) {
			prompt := messages[len(messages)-1].Content
			if strings.Contains(prompt, "CV Section") {
				cvCalls++
			} else {
				jdCalls++
			}
			return questionJSONResponse, nil
		},
	}, 3)

	questions, err := service.GenerateQuestions(context.Background(), "cv text", "jd text", 4)
	if err != nil {
		t.Fatalf("GenerateQuestions() error = %v", err)
	}

	if len(questions) != 4 {
		t.Fatalf("len(questions) = %d, want 4", len(questions))
	}
	if cvCalls == 0 || jdCalls == 0 {
		t.Errorf("cvCalls = %d, jdCalls = %d; want both sources queried", cvCalls, jdCalls)
	}

	for i, q := range questions {
		if q.EstimatedTimeMinutes < 2 || q.EstimatedTimeMinutes > 6 {
			t.Errorf("questions[%d] time = %d, want within [2,6]", i, q.EstimatedTimeMinutes)
		}
	}
}

func TestGenerateQuestions_DefaultCount(t *testing.T) {
	service := NewQuestionService(respondWith(questionJSONResponse), 3)

	questions, err := service.GenerateQuestions(context.Background(), "cv", "jd", 0)
	if err != nil {
		t.Fatalf("GenerateQuestions() error = %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("len(questions) = %d, want default 3", len(questions))
	}
}

func TestGenerateQuestions_AllCallsFail(t *testing.T) {
	calls := 0
	service := NewQuestionService(&stubLLM{
		chatFn: func([]ChatMessage, float32) (string, error) {
			calls++
			return "", errors.New("model unavailable")
		},
	}, 2)

	_, err := service.GenerateQuestions(context.Background(), "cv", "jd", 4)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("GenerateQuestions() error = %v, want ErrNoQuestions", err)
	}
	if calls == 0 {
		t.Error("model never called")
	}
}

func TestGenerateQuestions_UnusableResponses(t *testing.T) {
	service := NewQuestionService(respondWith("I refuse to answer in JSON"), 2)

	if _, err := service.GenerateQuestions(context.Background(), "cv", "jd", 4); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("GenerateQuestions() error = %v, want ErrNoQuestions", err)
	}
}

func TestGenerateFollowUp(t *testing.T) {
	service := NewQuestionService(respondWith(`{
  "questions": [{"question": "What happens under write contention?", "time_minutes": 1}]
}`), 3)

	question, err := service.GenerateFollowUp(context.Background(), "Explain transactions", "They group writes")
	if err != nil {
		t.Fatalf("GenerateFollowUp() error = %v", err)
	}

	if question.Question != "What happens under write contention?" {
		t.Errorf("Question = %q", question.Question)
	}
	// Follow-ups clamp to the tighter floor of 3 minutes.
	if question.EstimatedTimeMinutes != 3 {
		t.Errorf("time = %d, want 3", question.EstimatedTimeMinutes)
	}
}

func TestGenerateFollowUp_NoQuestion(t *testing.T) {
	service := NewQuestionService(respondWith(`{"questions": []}`), 2)

	if _, err := service.GenerateFollowUp(context.Background(), "q", "a"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("GenerateFollowUp() error = %v, want ErrNoQuestions", err)
	}
}
