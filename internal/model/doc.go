// Package model defines the domain types and value objects for the
// widgetgen CLI.
//
// This package contains pure data structures with no external dependencies:
// the Extraction produced from the two source files, the marker and artifact
// enums, and the exit codes (ExitCode) together with the CLIError type that
// carries them to the process boundary.
package model
