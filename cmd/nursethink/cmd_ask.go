package main

import (
	"errors"
	"fmt"

	"nursethink/models"

	"github.com/spf13/cobra"
)

var askFlags struct {
	showPrompt bool
}

var askCmd = &cobra.Command{
	Use:   "ask [question or scenario]",
	Short: "Answer one question in the selected coaching mode",
	RunE:  runAsk,
}

func init() {
	addControlFlags(askCmd)
	askCmd.Flags().BoolVar(&askFlags.showPrompt, "show-prompt", false, "Print the generated prompt before the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	controls, err := resolveControls()
	if err != nil {
		return err
	}
	request, err := resolveRequest(args)
	if err != nil {
		return err
	}
	notes, err := loadNotes()
	if err != nil {
		return err
	}

	coach, log, err := newCoach(controls.UseRealAI)
	if err != nil {
		return err
	}
	defer log.Sync()

	resp, err := coach.Answer(cmd.Context(), &models.GenerateRequest{
		Request:    request,
		Notes:      notes,
		Controls:   controls,
		ShowPrompt: askFlags.showPrompt,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resp.Prompt != "" {
		fmt.Fprintln(out, colorize(colorYellow, "Generated prompt"))
		fmt.Fprintln(out, resp.Prompt)
		fmt.Fprintln(out)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}

	label := "Response (Real AI)"
	if resp.Simulated {
		label = "Response (Simulated Demo)"
	}
	fmt.Fprintln(out, colorize(colorGreen, label))
	fmt.Fprintln(out, resp.Answer)
	return nil
}
