// Package model defines the domain types for the widgetgen CLI.
//
// All entities in this package are transient values that live for a single
// run: nothing is persisted apart from the two generated files.
package model

import (
	"fmt"
	"strings"
)

// MarkerStatus records what happened when a marker substring was searched
// for in a source file.
type MarkerStatus string

const (
	// MarkerFound indicates the marker occurred exactly once.
	MarkerFound MarkerStatus = "found"

	// MarkerMissing indicates the marker was absent and the whole file was
	// treated as payload.
	MarkerMissing MarkerStatus = "missing"

	// MarkerDuplicate indicates the marker occurred more than once. Text after
	// the second occurrence is not part of the payload.
	MarkerDuplicate MarkerStatus = "duplicate"
)

// String returns the string representation of MarkerStatus.
func (s MarkerStatus) String() string {
	return string(s)
}

// IsValid checks whether the MarkerStatus value is one of the predefined states.
func (s MarkerStatus) IsValid() bool {
	switch s {
	case MarkerFound, MarkerMissing, MarkerDuplicate:
		return true
	default:
		return false
	}
}

// ArtifactKind names one of the two generated TypeScript files.
type ArtifactKind string

const (
	// ArtifactStyles is styles.ts, exporting getStyles().
	ArtifactStyles ArtifactKind = "styles"

	// ArtifactTemplate is template.ts, exporting getTemplate().
	ArtifactTemplate ArtifactKind = "template"
)

// AllArtifacts lists every artifact kind in generation order.
var AllArtifacts = []ArtifactKind{ArtifactStyles, ArtifactTemplate}

// String returns the string representation of ArtifactKind.
func (k ArtifactKind) String() string {
	return string(k)
}

// IsValid checks whether the ArtifactKind value is one of the predefined kinds.
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactStyles, ArtifactTemplate:
		return true
	default:
		return false
	}
}

// ParseArtifactKind converts a string to an ArtifactKind.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	kind := ArtifactKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid artifact: %q (valid: styles, template)", s)
	}
	return kind, nil
}

// Extraction holds every intermediate and final payload produced while
// splitting the two source files.
type Extraction struct {
	// CSSContent is everything after the styles marker, untrimmed.
	CSSContent string `json:"cssContent"`

	// RemainingCSS is the cleaned CSS that preceded the html marker in the
	// template source.
	RemainingCSS string `json:"remainingCss"`

	// FullCSS is CSSContent + "\n" + RemainingCSS.
	FullCSS string `json:"fullCss"`

	// HTMLContent is the cleaned HTML payload.
	HTMLContent string `json:"htmlContent"`

	// StylesMarker reports how the styles marker was resolved.
	StylesMarker MarkerStatus `json:"stylesMarker"`

	// HTMLMarker reports how the html marker was resolved.
	HTMLMarker MarkerStatus `json:"htmlMarker"`
}

// Payload returns the payload that is embedded in the given artifact.
func (e *Extraction) Payload(kind ArtifactKind) string {
	if kind == ArtifactStyles {
		return e.FullCSS
	}
	return e.HTMLContent
}

// Degraded reports whether either source fell back to the markerless path
// or lost text to a duplicate marker.
func (e *Extraction) Degraded() bool {
	return e.StylesMarker != MarkerFound || e.HTMLMarker != MarkerFound
}

// ExitCode defines the process exit codes returned by the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitSourceNotFound indicates an input file could not be read.
	ExitSourceNotFound ExitCode = 2

	// ExitMarkerNotFound indicates a marker was missing or duplicated
	// while running in strict mode.
	ExitMarkerNotFound ExitCode = 3

	// ExitWriteFailed indicates an output file could not be written.
	ExitWriteFailed ExitCode = 4

	// ExitConfigInvalid indicates the configuration file or flags are invalid.
	ExitConfigInvalid ExitCode = 5

	// ExitOutOfDate indicates `check` found generated files that differ
	// from a fresh render.
	ExitOutOfDate ExitCode = 6

	// ExitNotRoundTrippable indicates `wrap` could not express a payload
	// as source files that extract back to the same payload.
	ExitNotRoundTrippable ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
