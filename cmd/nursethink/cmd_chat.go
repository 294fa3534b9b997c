package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"nursethink/models"
	"nursethink/services"

	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

func colorize(color, text string) string {
	return color + text + colorReset
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive Socratic study chat",
	Long:  "Chat with the study coach. Type '/clear' to reset the conversation and 'exit' or 'quit' to stop.",
	RunE:  runChat,
}

func init() {
	addControlFlags(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	controls, err := resolveControls()
	if err != nil {
		return err
	}
	controls.Mode = models.ModeStudyChat
	notes, err := loadNotes()
	if err != nil {
		return err
	}

	coach, log, err := newCoach(controls.UseRealAI)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sessionID := coach.Sessions().Create().ID
	return chatLoop(ctx, coach, sessionID, notes, controls, cmd.InOrStdin(), cmd.OutOrStdout())
}

func chatLoop(ctx context.Context, coach *services.CoachService, sessionID, notes string, controls models.Controls, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Study chat started. Type '/clear' to reset, 'exit' or 'quit' to stop.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, colorize(colorBlue, "You")+": ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "exit", "quit":
			return nil
		case "/clear":
			if err := coach.ClearChat(sessionID); err != nil {
				return err
			}
			fmt.Fprintln(out, colorize(colorYellow, "Chat cleared."))
			continue
		}

		resp, err := coach.SendChat(ctx, sessionID, &models.ChatRequest{
			Message:  text,
			Notes:    notes,
			Controls: controls,
		})
		switch {
		case models.IsValidationError(err):
			fmt.Fprintln(out, colorize(colorYellow, err.Error()))
			continue
		case errors.Is(err, services.ErrStaleResult):
			return ctx.Err()
		case err != nil:
			return err
		}

		if resp.Error != "" {
			fmt.Fprintln(out, colorize(colorYellow, resp.Error))
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", colorize(colorGreen, "Coach"), resp.Reply)
	}
}
