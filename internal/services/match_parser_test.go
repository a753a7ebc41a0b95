package services

import (
	"strings"
	"testing"
)

const sampleMatchResponse = `Overall: 75%
Good candidate overall fit

Skills Match: 70%
Solid core skills shown

Experience Match: 80%
Five years relevant backend experience

Analysis:
The candidate shows strong backend experience with Go and Postgres.

Skill: Go
Match Percentage: 85
Assessment: strong production Go experience

Skill: Kubernetes
Match Percentage: 40
Assessment: limited exposure only`

func TestParseMatchResponse_Sections(t *testing.T) {
	sections := parseMatchResponse(sampleMatchResponse)

	if sections.MatchPercentage != 75 {
		t.Errorf("MatchPercentage = %v, want 75", sections.MatchPercentage)
	}
	if sections.SkillsMatch != 70 {
		t.Errorf("SkillsMatch = %v, want 70", sections.SkillsMatch)
	}
	if sections.ExperienceMatch != 80 {
		t.Errorf("ExperienceMatch = %v, want 80", sections.ExperienceMatch)
	}
	if sections.OverallComment != "Good candidate overall fit" {
		t.Errorf("OverallComment = %q", sections.OverallComment)
	}
	if sections.SkillsComment != "Solid core skills shown" {
		t.Errorf("SkillsComment = %q", sections.SkillsComment)
	}
	if !strings.Contains(sections.Analysis, "strong backend experience") {
		t.Errorf("Analysis = %q, want backend experience text", sections.Analysis)
	}
	if strings.Contains(sections.Analysis, "Match Percentage") {
		t.Errorf("Analysis leaked skill block text: %q", sections.Analysis)
	}
}

func TestParseMatchResponse_MissingSections(t *testing.T) {
	sections := parseMatchResponse("The model ignored the format entirely.")

	if sections.MatchPercentage != 0 || sections.SkillsMatch != 0 || sections.ExperienceMatch != 0 {
		t.Errorf("sections without headers should score zero, got %+v", sections)
	}
	if sections.Analysis != "" {
		t.Errorf("Analysis = %q, want empty", sections.Analysis)
	}
}

func TestParseSkillBlocks(t *testing.T) {
	blocks := parseSkillBlocks(sampleMatchResponse)

	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}

	goBlock, ok := blocks["go"]
	if !ok {
		t.Fatal("missing block for skill 'go'")
	}
	if goBlock.Percentage != 85 {
		t.Errorf("go Percentage = %v, want 85", goBlock.Percentage)
	}
	if goBlock.Assessment != "strong production Go experience" {
		t.Errorf("go Assessment = %q", goBlock.Assessment)
	}

	k8sBlock := blocks["kubernetes"]
	if k8sBlock.Percentage != 40 {
		t.Errorf("kubernetes Percentage = %v, want 40", k8sBlock.Percentage)
	}
}

func TestParseSkillBlocks_NoBlocks(t *testing.T) {
	blocks := parseSkillBlocks("Overall: 50%\nNo skill details provided")
	if len(blocks) != 0 {
		t.Errorf("len(blocks) = %d, want 0", len(blocks))
	}
}

func TestExtractPercentage(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
	}{
		{"plain percentage", "Overall: 75%", 75},
		{"decimal percentage", "Skills Match: 62.5%", 62.5},
		{"clamped above 100", "Overall: 150%", 100},
		{"no number", "Overall: unknown", 0},
		{"number without percent sign", "Match: 42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPercentage(tt.line); got != tt.want {
				t.Errorf("extractPercentage(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCleanComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short comment unchanged", "Strong match", "Strong match"},
		{
			"truncated to word limit",
			"this comment has far too many words to survive truncation",
			"this comment has far too many",
		},
		{"markdown stripped", "**Strong** `match` overall", "Strong match overall"},
		{"never cuts mid word", "one two three four five sixseven eight", "one two three four five sixseven"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanComment(tt.input); got != tt.want {
				t.Errorf("cleanComment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
