// Package chat keeps the study-chat transcript for one session.
package chat

import (
	"slices"
	"strings"

	"nursethink/models"
	"nursethink/services/prompt"
)

// Session is an append-only transcript. Only Clear removes turns.
type Session struct {
	turns []models.ChatTurn
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) AppendUserTurn(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ErrEmptyInput
	}
	s.turns = append(s.turns, models.ChatTurn{Role: models.RoleUser, Content: content})
	return nil
}

func (s *Session) AppendAssistantTurn(content string) {
	s.turns = append(s.turns, models.ChatTurn{Role: models.RoleAssistant, Content: strings.TrimSpace(content)})
}

// Turns is the full transcript for display.
func (s *Session) Turns() []models.ChatTurn {
	return slices.Clone(s.turns)
}

func (s *Session) Len() int {
	return len(s.turns)
}

// Window returns the trailing turns that a prompt would include.
func (s *Session) Window() []models.ChatTurn {
	start := max(0, len(s.turns)-prompt.ChatWindow)
	return slices.Clone(s.turns[start:])
}

func (s *Session) BuildNextPrompt(notes string, controls models.Controls) string {
	return prompt.ComposeChatPrompt(notes, controls, s.Window())
}

// BuildPromptWith renders the prompt as if pending had already been appended
// as a user turn, leaving the transcript untouched.
func (s *Session) BuildPromptWith(pending string, notes string, controls models.Controls) (string, error) {
	pending = strings.TrimSpace(pending)
	if pending == "" {
		return "", models.ErrEmptyInput
	}
	window := append(s.Window(), models.ChatTurn{Role: models.RoleUser, Content: pending})
	return prompt.ComposeChatPrompt(notes, controls, window), nil
}

func (s *Session) Clear() {
	s.turns = nil
}
