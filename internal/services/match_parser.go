package services

import (
	"regexp"
	"strconv"
	"strings"
)

// The match-analysis response grammar is treated as a wire format: the
// model is instructed to emit labeled percentage sections followed by
// short justification lines, then one Skill/Match Percentage/Assessment
// block per required skill. Parsing is tolerant; anything the model
// omitted falls back to defaults at the call site.

const commentWordLimit = 6

type matchSections struct {
	MatchPercentage   float64
	SkillsMatch       float64
	ExperienceMatch   float64
	OverallComment    string
	SkillsComment     string
	ExperienceComment string
	Analysis          string
}

type skillBlock struct {
	Percentage float64
	Assessment string
	Found      bool
}

var (
	percentagePattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	skillMarkerPattern    = regexp.MustCompile(`(?i)skill:`)
	matchPercentPattern   = regexp.MustCompile(`(?i)match percentage:\s*(\d+(?:\.\d+)?)`)
	assessmentPattern     = regexp.MustCompile(`(?i)assessment:\s*(.+)`)
	markdownEmphasisChars = strings.NewReplacer("**", "", "*", "", "__", "", "_", "", "`", "", "#", "")
)

// parseMatchResponse scans the response line by line. Section headers are
// matched case-insensitively; the first percentage-like number on a header
// line becomes the section score, and following non-header lines accumulate
// as the section's comment.
func parseMatchResponse(response string) *matchSections {
	sections := &matchSections{}

	var analysisLines []string
	currentSection := ""

	for _, line := range strings.Split(response, "\n") {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		switch {
		case strings.Contains(lineLower, "overall:"):
			sections.MatchPercentage = extractPercentage(line)
			currentSection = "overall"
		case strings.Contains(lineLower, "skills match:"):
			sections.SkillsMatch = extractPercentage(line)
			currentSection = "skills"
		case strings.Contains(lineLower, "experience match:"):
			sections.ExperienceMatch = extractPercentage(line)
			currentSection = "experience"
		case strings.Contains(lineLower, "analysis:"):
			currentSection = "analysis"
		case skillMarkerPattern.MatchString(lineLower):
			// Skill blocks are parsed separately; stop comment accumulation.
			currentSection = ""
		case strings.TrimSpace(line) != "":
			switch currentSection {
			case "overall":
				sections.OverallComment = cleanComment(sections.OverallComment + " " + line)
			case "skills":
				sections.SkillsComment = cleanComment(sections.SkillsComment + " " + line)
			case "experience":
				sections.ExperienceComment = cleanComment(sections.ExperienceComment + " " + line)
			case "analysis":
				analysisLines = append(analysisLines, stripMarkdown(line))
			}
		}
	}

	sections.Analysis = strings.TrimSpace(strings.Join(analysisLines, "\n"))
	return sections
}

// parseSkillBlocks splits the response on Skill: markers and pairs each
// block's name line with its Match Percentage and Assessment, keyed by the
// lower-cased skill name. Blocks end at the next Skill: marker.
func parseSkillBlocks(response string) map[string]skillBlock {
	blocks := make(map[string]skillBlock)

	parts := skillMarkerPattern.Split(response, -1)
	if len(parts) < 2 {
		return blocks
	}

	for _, part := range parts[1:] {
		lines := strings.SplitN(part, "\n", 2)
		name := strings.ToLower(strings.TrimSpace(stripMarkdown(lines[0])))
		if name == "" {
			continue
		}

		block := skillBlock{Found: true}
		if m := matchPercentPattern.FindStringSubmatch(part); m != nil {
			if value, err := strconv.ParseFloat(m[1], 64); err == nil {
				block.Percentage = clampFloat(value, 0, 100)
			}
		}
		if m := assessmentPattern.FindStringSubmatch(part); m != nil {
			block.Assessment = cleanComment(m[1])
		}

		blocks[name] = block
	}

	return blocks
}

// extractPercentage pulls the first percentage-like number off a line and
// clamps it into [0, 100]. Lines without a number score zero.
func extractPercentage(line string) float64 {
	m := percentagePattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return clampFloat(value, 0, 100)
}

// cleanComment strips markdown emphasis and truncates to the bounded word
// count, never cutting mid-word.
func cleanComment(text string) string {
	words := strings.Fields(stripMarkdown(text))
	if len(words) > commentWordLimit {
		words = words[:commentWordLimit]
	}
	return strings.Join(words, " ")
}

func stripMarkdown(text string) string {
	return strings.TrimSpace(markdownEmphasisChars.Replace(text))
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
