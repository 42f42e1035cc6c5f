package main

import (
	"context"
	"fmt"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"

	"cmdline/internal/demo"
	"cmdline/internal/logger"
	"cmdline/internal/version"
	"cmdline/pkg/console"
)

// shellCmd represents the interactive shell over the demo tables
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell that parses every line with the demo tables",
	Long: `Start an interactive shell. Every entered line is parsed with the demo
tables as if it had been given to 'cmdline demo'; quotes group words into one
argument. Key press checks are not available in the shell because it owns the
terminal. A line containing '<<' starts a multi-line entry ended by the word
that follows it.`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

// lineSource is the part of an ishell shell used for nested prompts.
type lineSource interface {
	Print(val ...interface{})
	ReadLineErr() (string, error)
}

// shellLines serves console prompts from the running shell.
type shellLines struct {
	sh lineSource
}

func (s *shellLines) ReadLine(prompt string, size int) (string, error) {
	s.sh.Print(prompt)
	line, err := s.sh.ReadLineErr()
	if err != nil {
		return "", fmt.Errorf("%w: %w", console.ErrInputAborted, err)
	}
	return console.TruncateLine(line, size), nil
}

func (s *shellLines) Close() error { return nil }

func runShell(cmd *cobra.Command, _ []string) {
	logger.Info("Starting cmdline shell", "version", version.Version)

	st := styles()
	sh := ishell.New()
	sh.SetPrompt("cmdline> ")

	c := console.New(console.Options{Lines: &shellLines{sh: sh}, Styles: st})
	defer func() { _ = c.Close() }()
	r := &demo.Runner{Console: c, Styles: st}

	p := c.Printer()
	p.Bold(version.GetFormattedVersion())
	p.Println("")
	p.Info("Enter demo arguments, '-h' for the table help or 'exit' to quit.")

	sh.NotFound(demoLine(cmd.Context(), r))

	sh.Run()
}

// demoLine runs every unmatched shell line through the demo tables. The
// arguments are the quote-aware split of the line, not the raw words.
func demoLine(ctx context.Context, r *demo.Runner) func(*ishell.Context) {
	return func(ic *ishell.Context) {
		if len(ic.Args) == 0 {
			return
		}
		_, err := r.Run(ctx, ic.Args)
		logger.Debug("Line processed", "args", ic.Args, "status", demo.ExitCode(err))
	}
}
