package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/regform/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌─┐┬─┐┌┬┐
  ├┬┘├┤ │ ┬├┤ │ │├┬┘│││
  ┴└─└─┘└─┘└  └─┘┴└─┴ ┴
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var re *errors.RegformError
		if stderrors.As(err, &re) {
			fmt.Fprintln(os.Stderr, re.Format())
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", errors.Red("Error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "regform",
		Short: "Server-driven registration form with inline validation",
		Long: `regform serves a registration form whose validation runs on the server.

Browser events reach the server over a WebSocket; the server validates
the fields, renders inline error annotations and sends the updated form
back to the page. The same rules are available from the terminal:

  • serve    run the HTTP and WebSocket server
  • check    validate values given as flags
  • prompt   fill the form interactively
  • markup   print the default form markup`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		promptCmd(),
		markupCmd(),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errors.Green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errors.Red("✗"), fmt.Sprintf(format, args...))
}
