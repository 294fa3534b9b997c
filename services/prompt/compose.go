// Package prompt renders the instruction text sent to the language model.
// Every function here is pure: the output depends only on the arguments.
package prompt

import (
	"fmt"
	"strings"

	"nursethink/models"

	"github.com/samber/lo"
)

// ChatWindow is the number of trailing transcript turns rendered into a chat prompt.
const ChatWindow = 12

func ComposeModePrompt(mode models.Mode, request, notes string, difficulty models.Difficulty, controls models.Controls) (string, error) {
	composer, ok := modeComposers[mode]
	if !ok {
		return "", models.NewValidationError(fmt.Sprintf("mode %q does not produce a single prompt", mode))
	}
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	var prompt strings.Builder
	writeBase(&prompt, notes)
	prompt.WriteString(controlRules(controls, notes))
	if controls.StrictMode {
		prompt.WriteString("\n\n")
		prompt.WriteString(strictRules)
	}
	prompt.WriteString("\n\n")
	prompt.WriteString(strings.TrimSpace(composer(strings.TrimSpace(request), difficulty)))
	prompt.WriteString("\n\n")
	prompt.WriteString(qualityChecklist)

	return prompt.String(), nil
}

func ComposeCaseGenerationPrompt(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultCaseTopic
	}
	return fmt.Sprintf(caseGenerationPrompt, topic)
}

func ComposeChatPrompt(notes string, controls models.Controls, transcript []models.ChatTurn) string {
	var prompt strings.Builder
	writeBase(&prompt, notes)

	prompt.WriteString("CONTROLS:\n")
	prompt.WriteString(fmt.Sprintf("- Notes-only mode: %s\n", onOff(controls.NotesOnly)))
	prompt.WriteString(fmt.Sprintf("- Label sources: %s\n", onOff(controls.LabelSources)))
	prompt.WriteString(fmt.Sprintf("- Strict mode: %s\n\n", onOff(controls.StrictMode)))
	prompt.WriteString(chatInstructions)
	prompt.WriteString("\n")
	if controls.NotesOnly {
		prompt.WriteString(fmt.Sprintf("- Notes-only mode is ON: use only USER NOTES. If they are insufficient, output exactly %q and list which notes are needed.\n", InsufficientNotesSentinel))
	}
	if controls.LabelSources {
		prompt.WriteString("- " + labelRule(controls.NotesOnly) + "\n")
	}

	if controls.StrictMode {
		prompt.WriteString("\n")
		prompt.WriteString(strictRules)
		prompt.WriteString("\n")
	}

	prompt.WriteString("\nCONVERSATION SO FAR:\n")
	prompt.WriteString(RenderTranscript(transcript))
	prompt.WriteString("\nNow respond to the student's latest message.")

	return prompt.String()
}

// RenderTranscript renders the trailing ChatWindow turns as "ROLE: content" lines.
func RenderTranscript(transcript []models.ChatTurn) string {
	recent := transcript
	if len(recent) > ChatWindow {
		recent = recent[len(recent)-ChatWindow:]
	}
	lines := lo.Map(recent, func(turn models.ChatTurn, _ int) string {
		return fmt.Sprintf("%s: %s", strings.ToUpper(string(turn.Role)), turn.Content)
	})
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeBase(prompt *strings.Builder, notes string) {
	prompt.WriteString(SystemPrompt)
	prompt.WriteString("\n\nUSER NOTES (primary source):\n")
	prompt.WriteString(notesContext(notes))
	prompt.WriteString("\n\n")
}

func notesContext(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return emptyNotesPlaceholder
	}
	return notes
}

func controlRules(controls models.Controls, notes string) string {
	var rules strings.Builder
	rules.WriteString("CONTROLS:\n")
	rules.WriteString(fmt.Sprintf("- Notes-only mode: %s\n", onOff(controls.NotesOnly)))
	rules.WriteString(fmt.Sprintf("- Label sources: %s\n\n", onOff(controls.LabelSources)))
	rules.WriteString("RULES:\n")

	if controls.NotesOnly {
		rules.WriteString("1) Notes-only mode is ON:\n")
		rules.WriteString("   - Use ONLY information explicitly present in USER NOTES.\n")
		rules.WriteString("   - Do NOT use outside/general nursing knowledge.\n")
		rules.WriteString(fmt.Sprintf("   - If notes are insufficient, output exactly %q followed by a short list of what to add.\n", InsufficientNotesSentinel))
		if strings.TrimSpace(notes) == "" {
			rules.WriteString(fmt.Sprintf("   - USER NOTES are empty: output %q immediately, followed by the list of missing items.\n", InsufficientNotesSentinel))
		}
	} else {
		rules.WriteString("1) Notes-only mode is OFF: prefer USER NOTES, general nursing knowledge may fill gaps.\n")
	}

	if controls.LabelSources {
		rules.WriteString("2) Label sources is ON:\n")
		rules.WriteString("   - " + labelRule(controls.NotesOnly))
	} else {
		rules.WriteString("2) Label sources is OFF: no source tags are required.")
	}

	return rules.String()
}

func labelRule(notesOnly bool) string {
	if notesOnly {
		return "Tag every non-trivial factual claim with [Notes]. Do NOT use the [General] tag: outside knowledge is not allowed in Notes-only mode."
	}
	return "Tag every non-trivial factual claim with [Notes] if supported by USER NOTES or [General] if not found in notes."
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
