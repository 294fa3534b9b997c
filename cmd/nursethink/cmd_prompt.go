package main

import (
	"fmt"

	"nursethink/models"
	"nursethink/services/prompt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [question or scenario]",
	Short: "Print the composed prompt for a mode without calling the model",
	RunE:  runPrompt,
}

func init() {
	addControlFlags(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	controls, err := resolveControls()
	if err != nil {
		return err
	}
	request, err := resolveRequest(args)
	if err != nil {
		return err
	}
	if request == "" {
		return models.ErrEmptyRequest
	}
	notes, err := loadNotes()
	if err != nil {
		return err
	}

	text, err := prompt.ComposeModePrompt(controls.Mode, request, notes, controls.Difficulty, controls)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
