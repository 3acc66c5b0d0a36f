package disambig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/errors"
)

// Wire format field prefixes. A verifier response is exactly five lines, one
// field each, in this order.
const (
	fieldRelevance      = "RELEVANCE:"
	fieldInterpretation = "INTERPRETATION:"
	fieldReasoning      = "REASONING:"
	fieldConfidence     = "CONFIDENCE:"
	fieldContextMatch   = "CONTEXT_MATCH:"
)

// FormatVerifierResponse renders a result in the five-line wire format.
func FormatVerifierResponse(result domain.ContextualRelevanceResult) string {
	match := "NO"
	if result.ContextMatch {
		match = "YES"
	}

	return strings.Join([]string{
		fmt.Sprintf("%s %d", fieldRelevance, result.RelevanceScore),
		fmt.Sprintf("%s %s", fieldInterpretation, result.Interpretation),
		fmt.Sprintf("%s %s", fieldReasoning, result.Reasoning),
		fmt.Sprintf("%s %d", fieldConfidence, result.Confidence),
		fmt.Sprintf("%s %s", fieldContextMatch, match),
	}, "\n")
}

// ParseVerifierResponse parses the five-line wire format. Blank lines around
// the payload are tolerated; missing or misordered fields are not. YES/NO is
// case-insensitive.
func ParseVerifierResponse(raw string) (domain.ContextualRelevanceResult, error) {
	var result domain.ContextualRelevanceResult

	lines := nonEmptyLines(raw)
	if len(lines) != 5 {
		return result, fmt.Errorf("%w: expected 5 lines, got %d", errors.ErrMalformedResponse, len(lines))
	}

	relevance, err := parseIntField(lines[0], fieldRelevance)
	if err != nil {
		return result, err
	}

	interpretation, err := parseTextField(lines[1], fieldInterpretation)
	if err != nil {
		return result, err
	}

	reasoning, err := parseTextField(lines[2], fieldReasoning)
	if err != nil {
		return result, err
	}

	confidence, err := parseIntField(lines[3], fieldConfidence)
	if err != nil {
		return result, err
	}

	match, err := parseMatchField(lines[4])
	if err != nil {
		return result, err
	}

	result.RelevanceScore = clampScore(relevance)
	result.Interpretation = interpretation
	result.Reasoning = reasoning
	result.Confidence = clampScore(confidence)
	result.ContextMatch = match

	return result, nil
}

func nonEmptyLines(raw string) []string {
	var lines []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func parseTextField(line, prefix string) (string, error) {
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: missing %s", errors.ErrMalformedResponse, prefix)
	}

	return strings.TrimSpace(strings.TrimPrefix(line, prefix)), nil
}

func parseIntField(line, prefix string) (int, error) {
	text, err := parseTextField(line, prefix)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer: %q", errors.ErrMalformedResponse, prefix, text)
	}

	return value, nil
}

func parseMatchField(line string) (bool, error) {
	text, err := parseTextField(line, fieldContextMatch)
	if err != nil {
		return false, err
	}

	switch strings.ToUpper(text) {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	}

	return false, fmt.Errorf("%w: %s must be YES or NO, got %q", errors.ErrMalformedResponse, fieldContextMatch, text)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}

	if v > 100 {
		return 100
	}

	return v
}
