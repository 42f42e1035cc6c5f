package main

import (
	"os"

	"github.com/spf13/cobra"

	"cmdline/internal/demo"
	"cmdline/internal/logger"
	"cmdline/pkg/console"
)

// demoCmd hands its whole argument list to the demo tables
var demoCmd = &cobra.Command{
	Use:   "demo [args]",
	Short: "Parse the arguments with the demo tables and run the selected checks",
	Long: `Parse the arguments with the demo tables, run the interactive checks they
select and print every destination. Run 'cmdline demo -h' for the table help.

Exit status is 0 on success or a help request and 1 on a parse error.`,
	DisableFlagParsing: true,
	Run:                runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
	st := styles()
	c := console.NewTerminal(console.Options{Styles: st})
	r := &demo.Runner{Console: c, Styles: st}

	_, err := r.Run(cmd.Context(), args)
	if cerr := c.Close(); cerr != nil {
		logger.Warn("Failed to restore the terminal", "error", cerr)
	}
	if code := demo.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
