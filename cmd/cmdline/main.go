// Package main provides the cmdline CLI: the demo program for the parser and
// console engine, an interactive shell over the same tables, and a checker for
// table documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cmdline/internal/config"
	"cmdline/internal/logger"
	"cmdline/internal/output"
	"cmdline/internal/version"
)

var (
	logLevel   string
	logFile    string
	testMode   bool
	theme      string
	configFile string

	settings = config.New()
	cfg      config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmdline",
	Short: "Declarative command-line parser and console input demo",
	Long: `cmdline exercises a table-driven command-line parser and a console
input engine for typed prompts and key polling.`,
	SilenceUsage: true,
	// Root flags come before the subcommand; demo receives the rest unparsed.
	TraverseChildren: true,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")
		if detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errParse) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.GetFormattedVersion()

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.StringVar(&logFile, config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.BoolVar(&testMode, config.KeyTestMode, false, "Run in deterministic test mode")
	flags.StringVar(&theme, config.KeyTheme, "", fmt.Sprintf("Colour theme (%v or plain)", output.ThemeNames()))
	flags.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/cmdline/config.yaml)")

	// Bind flags to viper
	for _, key := range []string{config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyTheme} {
		if err := settings.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	versionCmd.Flags().Bool("detailed", false, "Show commit and build details")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	wd, _ := os.Getwd()
	var err error
	cfg, err = config.Load(settings, configFile, wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Configuration loaded", "file", cfg.File, "theme", cfg.Theme, "test-mode", cfg.TestMode)
}

// styles resolves the configured theme. Test mode and the "plain" theme give
// no provider, which keeps every printer on plain text.
func styles() output.StyleProvider {
	if cfg.TestMode {
		return nil
	}
	provider, err := output.NewThemeStyleProvider(cfg.Theme, os.Stdout)
	if err != nil {
		logger.Warn("Falling back to plain output", "theme", cfg.Theme, "error", err)
		return nil
	}
	if provider == nil {
		return nil
	}
	return provider
}
