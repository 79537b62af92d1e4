// Package cli implements the cobra-based CLI commands for widgetgen.
//
// Each subcommand (generate, check, wrap) is defined in its own file within
// this package. This file defines the root command, which holds the global
// flags and, when invoked without a subcommand, runs generate.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/widgetgen/internal/config"
	"github.com/shinji-kodama/widgetgen/internal/logger"
	"github.com/shinji-kodama/widgetgen/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// logLevel is the slog level name used when --verbose is not set.
	logLevel string

	// configPath is an explicit config file; empty means auto-discovery
	// in the working directory.
	configPath string

	// overrides holds the path and mode flags that take precedence over
	// the config file.
	overrides configOverrides
)

// configOverrides mirrors config.Config for flag binding.
type configOverrides struct {
	baseDir        string
	stylesSource   string
	templateSource string
	stylesOutput   string
	templateOutput string
	strict         bool
}

// version, commit, and date are set at build time via ldflags.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running the root command with no subcommand performs generate, so the
// bare `widgetgen` invocation behaves like the original one-shot script.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "widgetgen",
		Short: "Generate the chat widget's styles.ts and template.ts",
		Long: `widgetgen extracts the CSS and HTML literals from the widget's extracted
source fragments (extracted_styles.css, extracted_template.html) and wraps
them in the getStyles() and getTemplate() TypeScript generator functions.

Run without a subcommand it behaves like "widgetgen generate".`,

		Args: cobra.NoArgs,

		// SilenceUsage/SilenceErrors: Execute formats errors itself
		// (text or JSON based on --json).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(cmd.ErrOrStderr(), logger.Options{
				Level:   logLevel,
				Verbose: verbose,
				JSON:    jsonOutput,
			})
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &generateFlags{})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default: widgetgen.yaml or widgetgen.json in the working directory)")
	pf.StringVar(&overrides.baseDir, "base-dir", "", "Directory relative file names are resolved against (default: "+config.DefaultBaseDir+")")
	pf.StringVar(&overrides.stylesSource, "styles-src", "", "Styles source file (default: "+config.DefaultStylesSource+")")
	pf.StringVar(&overrides.templateSource, "template-src", "", "Template source file (default: "+config.DefaultTemplateSource+")")
	pf.StringVar(&overrides.stylesOutput, "styles-out", "", "Generated styles file (default: "+config.DefaultStylesOutput+")")
	pf.StringVar(&overrides.templateOutput, "template-out", "", "Generated template file (default: "+config.DefaultTemplateOutput+")")
	pf.BoolVar(&overrides.strict, "strict", false, "Fail when a marker is missing or duplicated instead of falling back")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewWrapCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog emits a debug-level log line. It only shows up with
// --verbose or --log-level debug.
func VerboseLog(format string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(format, args...))
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig builds the effective configuration: defaults, then the config
// file (explicit or discovered), then flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
		}
		path = config.FindConfigFile(cwd)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		VerboseLog("Using config file: %s", path)
	}

	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		cfg.BaseDir = overrides.baseDir
	}
	if flags.Changed("styles-src") {
		cfg.StylesSource = overrides.stylesSource
	}
	if flags.Changed("template-src") {
		cfg.TemplateSource = overrides.templateSource
	}
	if flags.Changed("styles-out") {
		cfg.StylesOutput = overrides.stylesOutput
	}
	if flags.Changed("template-out") {
		cfg.TemplateOutput = overrides.templateOutput
	}
	if flags.Changed("strict") {
		cfg.Strict = overrides.strict
	}

	if err := cfg.Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid, "invalid configuration", err)
	}
	return cfg, nil
}
