package main

import (
	"errors"

	"github.com/spf13/cobra"

	"cmdline/internal/schema"
	"cmdline/pkg/cmdline"
)

// errParse is returned after the parser has already printed its message.
var errParse = errors.New("command line rejected")

// checkCmd parses arguments against a table document
var checkCmd = &cobra.Command{
	Use:   "check <schema> [-- args...]",
	Short: "Parse arguments against a YAML or TOML table document",
	Long: `Load a table document (.yaml, .yml or .toml), parse the arguments after
'--' against it and print every bound value. Use --line to parse one raw
command line with shell-style quoting instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("line", "", "Raw command line to tokenize and parse")
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := schema.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := doc.CheckVersion(); err != nil {
		return err
	}
	b, err := doc.Bind()
	if err != nil {
		return err
	}
	b.Command.Out = cmd.OutOrStdout()
	b.Command.Styles = styles()

	line, _ := cmd.Flags().GetString("line")
	if line != "" {
		if len(args) > 1 {
			return errors.New("--line cannot be combined with arguments")
		}
		err = b.ParseLine(line)
	} else {
		err = b.Parse(args[1:])
	}
	switch {
	case errors.Is(err, cmdline.ErrHelp):
		return nil
	case err != nil:
		cmd.SilenceErrors = true
		return errParse
	}
	return b.WriteResults(cmd.OutOrStdout())
}
