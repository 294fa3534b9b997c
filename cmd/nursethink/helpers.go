package main

import (
	"fmt"
	"os"
	"strings"

	"nursethink/config"
	"nursethink/db"
	"nursethink/logger"
	"nursethink/models"
	"nursethink/services"
	"nursethink/services/extract"
	"nursethink/services/llm"
	"nursethink/services/prompt"

	"github.com/spf13/cobra"
)

// controlFlags is shared by every subcommand that builds a prompt.
var controlFlags struct {
	mode         string
	difficulty   string
	notesOnly    bool
	labelSources bool
	strict       bool
	realAI       bool
	notes        string
	notesFile    string
	template     string
	verbose      bool
}

func addControlFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&controlFlags.mode, "mode", string(models.ModePriority), "Coaching mode (priority, delegation, therapeutic, mixed_drill, quiz, explain, mnemonics)")
	f.StringVar(&controlFlags.difficulty, "difficulty", string(models.DifficultyMedium), "Quiz difficulty (easy, medium, hard)")
	f.BoolVar(&controlFlags.notesOnly, "notes-only", false, "Use only the supplied notes; never guess")
	f.BoolVar(&controlFlags.labelSources, "label-sources", true, "Tag claims with [Notes] or [General]")
	f.BoolVar(&controlFlags.strict, "strict", true, "Add the strict NCLEX rules block")
	f.BoolVar(&controlFlags.realAI, "real-ai", false, "Call the language model instead of the simulated demo")
	f.StringVar(&controlFlags.notes, "notes", "", "Study notes as text")
	f.StringVar(&controlFlags.notesFile, "notes-file", "", "Study notes file (.txt or .pdf)")
	f.StringVar(&controlFlags.template, "template", "", "Quick template name to use as the scenario (fuzzy matched)")
	f.BoolVar(&controlFlags.verbose, "verbose", false, "Write structured logs to stderr")
}

func resolveControls() (models.Controls, error) {
	c := models.Controls{
		NotesOnly:    controlFlags.notesOnly,
		LabelSources: controlFlags.labelSources,
		StrictMode:   controlFlags.strict,
		UseRealAI:    controlFlags.realAI,
		Mode:         models.Mode(controlFlags.mode),
		Difficulty:   models.Difficulty(controlFlags.difficulty),
	}
	if err := c.Normalize(); err != nil {
		return models.Controls{}, err
	}
	return c, nil
}

// loadNotes joins --notes with the text extracted from --notes-file.
func loadNotes() (string, error) {
	notes := strings.TrimSpace(controlFlags.notes)
	if controlFlags.notesFile == "" {
		return notes, nil
	}

	data, err := os.ReadFile(controlFlags.notesFile)
	if err != nil {
		return "", fmt.Errorf("failed to read notes file: %w", err)
	}
	text := extract.ExtractText(controlFlags.notesFile, data)
	if text == "" {
		return "", fmt.Errorf("could not extract text from %s; try a .txt export or pass --notes", controlFlags.notesFile)
	}

	if notes == "" {
		return text, nil
	}
	return notes + "\n\n" + text, nil
}

// resolveRequest uses the positional args, or the --template scenario when
// no args are given.
func resolveRequest(args []string) (string, error) {
	request := strings.TrimSpace(strings.Join(args, " "))
	if request != "" || controlFlags.template == "" {
		return request, nil
	}

	t, ok := prompt.FindTemplate(controlFlags.template)
	if !ok {
		return "", fmt.Errorf("no template matches %q", controlFlags.template)
	}
	return t.Scenario, nil
}

func newLogger(mode string) (*logger.Logger, error) {
	if !controlFlags.verbose {
		return logger.Nop(), nil
	}
	return logger.New(mode)
}

// newCoach wires a CoachService for a single CLI run. The model client is
// only built when real AI is requested.
func newCoach(realAI bool) (*services.CoachService, *logger.Logger, error) {
	cfg := config.Load()

	log, err := newLogger(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var generator llm.Generator
	if realAI {
		generator, err = llm.NewFromConfig(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
	}

	store := services.NewSessionStore(log)
	return services.NewCoachService(generator, db.NewMemoryAttemptRepository(), store, log), log, nil
}
