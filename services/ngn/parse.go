package ngn

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nursethink/models"
)

// CaseParseError means the model response held no usable case JSON.
type CaseParseError struct {
	Reason string
	Err    error
}

func (e *CaseParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not parse NGN case JSON: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("could not parse NGN case JSON: %s", e.Reason)
}

func (e *CaseParseError) Unwrap() error {
	return e.Err
}

func IsCaseParseError(err error) bool {
	var pe *CaseParseError
	return errors.As(err, &pe)
}

// ParseCase reads a Case from a model response. The whole text is tried
// first, then the span from the first '{' to the last '}'.
func ParseCase(text string) (*models.Case, error) {
	c, wholeErr := tryParseWhole(text)
	if wholeErr == nil {
		return c, nil
	}

	c, spanErr := tryParseBraceSpan(text)
	if spanErr != nil {
		return nil, spanErr
	}
	return c, nil
}

func tryParseWhole(text string) (*models.Case, error) {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil, &CaseParseError{Reason: "response is not a JSON object"}
	}
	return decodeCase(text)
}

func tryParseBraceSpan(text string) (*models.Case, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, &CaseParseError{Reason: "no JSON object found in response"}
	}
	return decodeCase(text[start : end+1])
}

func decodeCase(raw string) (*models.Case, error) {
	var c models.Case
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, &CaseParseError{Reason: "invalid JSON", Err: err}
	}
	return &c, nil
}

// MembershipIssues lists best answers that are not among their stage's
// options. Such cases are still playable; a mismatched answer just can't score.
func MembershipIssues(c *models.Case) []string {
	var issues []string
	for i, stage := range c.Stages {
		n := StageNumber(stage, i)
		check := func(field, value string, options []string) {
			if value == "" {
				return
			}
			for _, o := range options {
				if o == value {
					return
				}
			}
			issues = append(issues, fmt.Sprintf("stage %d: best %s %q is not an option", n, field, value))
		}
		check("hypothesis", stage.Best.Hypothesis, stage.Options.Hypotheses)
		check("action", stage.Best.Action, stage.Options.Actions)
		check("outcome", stage.Best.Outcome, stage.Options.Outcomes)
	}
	return issues
}

// StageNumber falls back to the 1-based position when the model left it out.
func StageNumber(stage models.Stage, index int) int {
	if stage.StageNumber > 0 {
		return stage.StageNumber
	}
	return index + 1
}
