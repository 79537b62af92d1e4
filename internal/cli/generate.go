// generate.go implements the "widgetgen generate" command.
//
// Orchestration steps:
//  1. Resolve configuration (defaults, config file, flags)
//  2. Read both source files and extract the CSS and HTML payloads
//  3. Render styles.ts and template.ts in memory
//  4. Write the outputs (atomically, one after the other)
//  5. Print the status line or a JSON summary
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/widgetgen/internal/config"
	"github.com/shinji-kodama/widgetgen/internal/extract"
	"github.com/shinji-kodama/widgetgen/internal/model"
	"github.com/shinji-kodama/widgetgen/internal/output"
	"github.com/shinji-kodama/widgetgen/internal/scaffold"
)

// successMessage is the status line printed after a text-mode generate.
const successMessage = "Files generated successfully."

// generateFlags holds the flag values for the generate command.
type generateFlags struct {
	only string // --only: restrict writing to one artifact
}

// NewGenerateCommand creates the "generate" cobra command.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract payloads and write styles.ts and template.ts",
		Long: `Extract the CSS and HTML payloads from the two source fragments and write
the generated TypeScript modules, overwriting any previous version.

Examples:
  widgetgen generate
  widgetgen generate --base-dir ./widget-cdn/src/ui
  widgetgen generate --strict --only template`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.only, "only", "", "Write only one artifact: styles or template")

	return cmd
}

// pipeline is the shared result of resolving config, extracting and
// rendering. generate writes it, check compares it.
type pipeline struct {
	paths      config.Paths
	extraction *model.Extraction
	rendered   map[model.ArtifactKind][]byte
}

// runPipeline performs every step that does not touch the outputs.
func runPipeline(cmd *cobra.Command) (*pipeline, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	paths := cfg.Resolve()
	VerboseLog("Styles source: %s", paths.StylesSource)
	VerboseLog("Template source: %s", paths.TemplateSource)

	ext, err := extract.ExtractFiles(paths.StylesSource, paths.TemplateSource, extract.Options{Strict: cfg.Strict})
	if err != nil {
		return nil, extractError(err)
	}
	warnDegraded(ext, paths)

	rendered, err := scaffold.RenderAll(ext)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to render output files", err)
	}

	return &pipeline{paths: paths, extraction: ext, rendered: rendered}, nil
}

// runGenerate is the main orchestration function for the generate command.
func runGenerate(cmd *cobra.Command, flags *generateFlags) error {
	kinds, err := selectArtifacts(flags.only)
	if err != nil {
		return err
	}

	p, err := runPipeline(cmd)
	if err != nil {
		return err
	}

	files := make([]output.File, 0, len(kinds))
	for _, kind := range kinds {
		files = append(files, output.File{Path: p.paths.Output(kind), Data: p.rendered[kind]})
	}

	if err := output.WriteAll(files); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed, "failed to write generated files", err)
	}
	for _, f := range files {
		VerboseLog("Wrote %s (%d bytes)", f.Path, len(f.Data))
	}

	printGenerateResult(cmd.OutOrStdout(), p.extraction, kinds, files)
	return nil
}

// selectArtifacts turns the --only flag into the list of artifacts to handle.
func selectArtifacts(only string) ([]model.ArtifactKind, error) {
	if only == "" {
		return model.AllArtifacts, nil
	}
	kind, err := model.ParseArtifactKind(only)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid, "invalid --only value", err)
	}
	return []model.ArtifactKind{kind}, nil
}

// extractError maps extraction failures onto exit codes.
func extractError(err error) error {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	if errors.Is(err, extract.ErrMarkerNotFound) || errors.Is(err, extract.ErrDuplicateMarker) {
		return model.WrapCLIError(model.ExitMarkerNotFound, "source file is malformed", err)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to extract payloads", err)
}

// warnDegraded logs the silent fallbacks so they are at least visible on
// stderr; the generated output is unchanged.
func warnDegraded(ext *model.Extraction, paths config.Paths) {
	if !ext.Degraded() {
		return
	}
	if ext.StylesMarker == model.MarkerMissing {
		slog.Warn("styles marker not found, using the whole file as CSS",
			"marker", extract.StylesMarker, "path", paths.Source(model.ArtifactStyles))
	}
	switch ext.HTMLMarker {
	case model.MarkerMissing:
		slog.Warn("html marker not found, using the whole file as HTML",
			"marker", extract.HTMLMarker, "path", paths.Source(model.ArtifactTemplate))
	case model.MarkerDuplicate:
		slog.Warn("html marker occurs more than once, text after the second one is dropped",
			"marker", extract.HTMLMarker, "path", paths.Source(model.ArtifactTemplate))
	}
}

// generatedFileJSON describes one written file in --json output.
type generatedFileJSON struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
}

// printGenerateResult outputs the generate result in text or JSON format.
func printGenerateResult(w io.Writer, ext *model.Extraction, kinds []model.ArtifactKind, files []output.File) {
	if !IsJSONOutput() {
		fmt.Fprintln(w, successMessage)
		return
	}

	type resultJSON struct {
		Files        []generatedFileJSON `json:"files"`
		StylesMarker string              `json:"stylesMarker"`
		HTMLMarker   string              `json:"htmlMarker"`
	}

	result := resultJSON{
		Files:        make([]generatedFileJSON, 0, len(files)),
		StylesMarker: ext.StylesMarker.String(),
		HTMLMarker:   ext.HTMLMarker.String(),
	}
	for i, f := range files {
		result.Files = append(result.Files, generatedFileJSON{
			Artifact: kinds[i].String(),
			Path:     f.Path,
			Bytes:    len(f.Data),
		})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(w, string(data))
}
