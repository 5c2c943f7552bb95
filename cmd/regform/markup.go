package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/render"
)

func markupCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "markup",
		Short: "Print the default form markup",
		Long: `Print the HTML of the built-in registration form.

The output can be saved, restyled and passed back with form.markupFile;
inputs are matched by name, so keep the name attributes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := render.NewRenderer(render.RendererConfig{Pretty: !compact})
			return r.RenderToWriter(cmd.OutOrStdout(), regform.DefaultMarkup())
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print on a single line")

	return cmd
}
