// wrap.go implements the "widgetgen wrap" command.
//
// wrap runs the pipeline backwards: it reads the generated styles.ts and
// template.ts, pulls the payloads out of their scaffolding and writes a pair
// of source fragments that generate would turn back into the same files.
// This recovers the sources when only the generated files were committed.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/widgetgen/internal/config"
	"github.com/shinji-kodama/widgetgen/internal/extract"
	"github.com/shinji-kodama/widgetgen/internal/model"
	"github.com/shinji-kodama/widgetgen/internal/output"
	"github.com/shinji-kodama/widgetgen/internal/scaffold"
)

// wrapFlags holds the flag values for the wrap command.
type wrapFlags struct {
	force bool // --force: overwrite existing source files
}

// NewWrapCommand creates the "wrap" cobra command.
func NewWrapCommand() *cobra.Command {
	flags := &wrapFlags{}

	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Rebuild the source fragments from generated styles.ts and template.ts",
		Long: `Read the generated TypeScript files, extract their payloads and write
extracted_styles.css and extracted_template.html so that "widgetgen generate"
reproduces the same output.

Existing source files are only replaced with --force.

Examples:
  widgetgen wrap
  widgetgen wrap --force --base-dir ./widget-cdn/src/ui`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrap(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing source files")

	return cmd
}

// runWrap parses both generated files and writes the reconstructed sources.
func runWrap(cmd *cobra.Command, flags *wrapFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	paths := cfg.Resolve()

	payloads := make(map[model.ArtifactKind]string, len(model.AllArtifacts))
	for _, kind := range model.AllArtifacts {
		payload, err := readPayload(kind, paths.Output(kind))
		if err != nil {
			return err
		}
		payloads[kind] = payload
	}

	sources, err := extract.Wrap(payloads[model.ArtifactStyles], payloads[model.ArtifactTemplate])
	if err != nil {
		return model.WrapCLIError(model.ExitNotRoundTrippable, "cannot rebuild source files", err)
	}

	files := make([]output.File, 0, len(model.AllArtifacts))
	for _, kind := range model.AllArtifacts {
		files = append(files, output.File{Path: paths.Source(kind), Data: []byte(sources.For(kind))})
	}
	if !flags.force {
		for _, f := range files {
			if output.Exists(f.Path) {
				return model.NewCLIError(model.ExitGeneralError,
					fmt.Sprintf("%s already exists (use --force to overwrite)", f.Path))
			}
		}
	}

	if err := output.WriteAll(files); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed, "failed to write source files", err)
	}

	printWrapResult(cmd.OutOrStdout(), paths)
	return nil
}

// readPayload reads one generated file and strips its scaffolding.
func readPayload(kind model.ArtifactKind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.WrapCLIError(model.ExitSourceNotFound,
				fmt.Sprintf("generated %s file not found: %s", kind, path), err)
		}
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path), err)
	}

	payload, err := scaffold.Parse(kind, data)
	if err != nil {
		if errors.Is(err, scaffold.ErrScaffoldMismatch) {
			return "", model.WrapCLIError(model.ExitNotRoundTrippable,
				fmt.Sprintf("%s was edited outside its payload", path), err)
		}
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to parse generated file", err)
	}
	VerboseLog("Read %s payload from %s (%d bytes)", kind, path, len(payload))
	return payload, nil
}

// printWrapResult outputs the written source paths.
func printWrapResult(w io.Writer, paths config.Paths) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"stylesSource":   paths.StylesSource,
			"templateSource": paths.TemplateSource,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintln(w, "Source files written successfully.")
	fmt.Fprintf(w, "  Styles:   %s\n", paths.StylesSource)
	fmt.Fprintf(w, "  Template: %s\n", paths.TemplateSource)
}
