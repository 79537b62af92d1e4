// check.go implements the "widgetgen check" command.
//
// check runs the same extraction and rendering as generate but compares
// the result with the files on disk instead of writing them. It is meant
// for CI: a non-zero exit (ExitOutOfDate) means someone edited a source
// fragment without regenerating, or edited a generated file by hand.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/widgetgen/internal/model"
	"github.com/shinji-kodama/widgetgen/internal/output"
)

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that styles.ts and template.ts are up to date",
		Long: `Render both generated files in memory and compare them with the files on
disk. Nothing is written. Exits with status 6 when any file is stale or missing.

Examples:
  widgetgen check
  widgetgen check --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}

	return cmd
}

// artifactStatus is the comparison result for one generated file.
type artifactStatus struct {
	Artifact string        `json:"artifact"`
	Path     string        `json:"path"`
	Status   output.Status `json:"status"`
}

// runCheck renders and compares every artifact.
func runCheck(cmd *cobra.Command) error {
	p, err := runPipeline(cmd)
	if err != nil {
		return err
	}

	results := make([]artifactStatus, 0, len(model.AllArtifacts))
	stale := 0
	for _, kind := range model.AllArtifacts {
		path := p.paths.Output(kind)
		status, err := output.Compare(path, p.rendered[kind])
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to compare generated file", err)
		}
		VerboseLog("%s: %s", path, status)
		if status != output.StatusUpToDate {
			stale++
		}
		results = append(results, artifactStatus{Artifact: kind.String(), Path: path, Status: status})
	}

	printCheckResult(cmd.OutOrStdout(), results)

	if stale > 0 {
		return model.NewCLIError(model.ExitOutOfDate,
			fmt.Sprintf("%d generated file(s) out of date; run widgetgen generate", stale))
	}
	return nil
}

// printCheckResult outputs the comparison table or a JSON document.
//
// The text format is:
//
//	ARTIFACT   STATUS      PATH
//	styles     up-to-date  /opt/chtq/widget-cdn/src/ui/styles.ts
//	template   stale       /opt/chtq/widget-cdn/src/ui/template.ts
func printCheckResult(w io.Writer, results []artifactStatus) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(struct {
			Artifacts []artifactStatus `json:"artifacts"`
		}{results}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintf(w, "%-10s %-11s %s\n", "ARTIFACT", "STATUS", "PATH")
	for _, r := range results {
		fmt.Fprintf(w, "%-10s %-11s %s\n", r.Artifact, r.Status, r.Path)
	}
}
