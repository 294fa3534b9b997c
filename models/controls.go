package models

import (
	"fmt"
	"strings"
)

type Mode string

const (
	ModePriority    Mode = "priority"
	ModeDelegation  Mode = "delegation"
	ModeTherapeutic Mode = "therapeutic"
	ModeMixedDrill  Mode = "mixed_drill"
	ModeQuiz        Mode = "quiz"
	ModeExplain     Mode = "explain"
	ModeMnemonics   Mode = "mnemonics"
	ModeNGNCase     Mode = "ngn_case"
	ModeStudyChat   Mode = "study_chat"
)

var AllModes = []Mode{
	ModePriority,
	ModeDelegation,
	ModeTherapeutic,
	ModeMixedDrill,
	ModeNGNCase,
	ModeStudyChat,
	ModeQuiz,
	ModeExplain,
	ModeMnemonics,
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModes {
		if m == known {
			return m, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown mode %q", s))
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty treats an empty value as medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown difficulty %q", s))
	}
}

type Controls struct {
	NotesOnly    bool       `json:"notes_only"`
	LabelSources bool       `json:"label_sources"`
	StrictMode   bool       `json:"strict_mode"`
	UseRealAI    bool       `json:"use_real_ai"`
	Mode         Mode       `json:"mode"`
	Difficulty   Difficulty `json:"difficulty"`
}

// DefaultControls mirrors the initial state of the study form.
func DefaultControls() Controls {
	return Controls{
		LabelSources: true,
		StrictMode:   true,
		Mode:         ModePriority,
		Difficulty:   DifficultyMedium,
	}
}

// Normalize validates Mode and Difficulty in place. An empty mode becomes
// priority and an empty difficulty becomes medium.
func (c *Controls) Normalize() error {
	if strings.TrimSpace(string(c.Mode)) == "" {
		c.Mode = ModePriority
	} else {
		m, err := ParseMode(string(c.Mode))
		if err != nil {
			return err
		}
		c.Mode = m
	}

	d, err := ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return err
	}
	c.Difficulty = d
	return nil
}
