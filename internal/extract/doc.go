// Package extract splits the two widget source files into their CSS and
// HTML payloads.
//
// The source files are fragments cut out of a larger TypeScript module, so
// each still carries a bit of the surrounding scaffolding: the styles source
// starts with "const styles = `" and the template source holds the tail of
// the CSS literal, then "const html = `" and the HTML literal. Extraction
// locates those markers, discards the scaffolding, and trims the closing
// backtick/semicolon forms left at the end of each literal.
//
// When a marker is absent the whole file is treated as payload. That
// fallback is kept on purpose so output stays byte-compatible with earlier
// runs; Options.Strict reports it as an error instead.
//
// Wrap is the inverse: it builds a pair of source files that extract back
// to a given payload pair, which is how `widgetgen wrap` recovers sources
// from previously generated TypeScript.
package extract
