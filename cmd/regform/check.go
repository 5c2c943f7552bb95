package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/validate"
)

func checkCmd() *cobra.Command {
	var v validate.Values

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate registration values",
		Long: `Run the registration rules against values given as flags.

Failures are printed in rule order and the command exits with status 1.
On success the collected record is printed as JSON.

Examples:
  regform check --email user@site.ru --password secret1 --confirm secret1 --consent
  regform check --email bad-email --password 12345 --confirm 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, v)
		},
	}

	cmd.Flags().StringVar(&v.Email, "email", "", "E-mail address")
	cmd.Flags().StringVar(&v.Organization, "organization", "", "Organization name")
	cmd.Flags().StringVar(&v.FullName, "full-name", "", "Full name (optional)")
	cmd.Flags().StringVar(&v.Password, "password", "", "Password")
	cmd.Flags().StringVar(&v.ConfirmPassword, "confirm", "", "Password confirmation")
	cmd.Flags().BoolVar(&v.Consent, "consent", false, "Accept the data processing terms")

	return cmd
}

func runCheck(cmd *cobra.Command, v validate.Values) error {
	out := cmd.OutOrStdout()

	printRecord := regform.SubmitterFunc(func(_ context.Context, rec regform.Record) error {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	})

	c := regform.Bind(regform.DefaultMarkup(), regform.DefaultSelector,
		regform.WithSubmitter(printRecord))
	c.SetValues(v)

	outcome := c.Submit(cmd.Context())
	if outcome.Err != nil {
		return errors.New("E302").Wrap(outcome.Err)
	}
	if !outcome.Accepted() {
		for _, f := range outcome.Failures {
			errorMsg(out, "%s: %s", f.Field, f.Message)
		}
		return errors.New("E300").
			WithDetail(fmt.Sprintf("%d field(s) failed validation", len(outcome.Failures)))
	}
	return nil
}
