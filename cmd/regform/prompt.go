package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/tui"
)

func promptCmd() *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the registration form interactively",
		Long: `Ask for every field in the terminal and validate each answer when it
is entered, the way the page validates a field on blur.

A field that keeps failing is asked again up to --attempts times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := tui.NewForm(tui.NewSurveyDriver(),
				tui.WithMaxAttempts(attempts),
				tui.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelError}))),
			)
			outcome, err := form.Run(cmd.Context())
			if err != nil {
				if stderrors.Is(err, tui.ErrAborted) {
					return errors.New("E301")
				}
				return err
			}
			if outcome.Err != nil {
				return errors.New("E302").Wrap(outcome.Err)
			}
			if !outcome.Accepted() {
				return errors.New("E300").
					WithDetail(fmt.Sprintf("%d field(s) failed validation", len(outcome.Failures)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&attempts, "attempts", tui.DefaultMaxAttempts, "Times a failing field is asked")

	return cmd
}
