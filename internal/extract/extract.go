package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/shinji-kodama/widgetgen/internal/model"
)

const (
	// StylesMarker precedes the CSS payload in the styles source.
	StylesMarker = "const styles = `"

	// HTMLMarker separates the CSS remainder from the HTML payload in the
	// template source.
	HTMLMarker = "const html = `"
)

var (
	// ErrMarkerNotFound is returned in strict mode when a source file does
	// not contain its marker.
	ErrMarkerNotFound = errors.New("marker not found")

	// ErrDuplicateMarker is returned in strict mode when the template source
	// contains the html marker more than once.
	ErrDuplicateMarker = errors.New("marker occurs more than once")
)

// Options controls how Extract treats malformed sources.
type Options struct {
	// Strict turns the silent markerless fallback into an error.
	Strict bool
}

// Extract splits the raw styles and template sources into payloads.
//
// The styles source is cut at the first StylesMarker and everything after it
// becomes CSSContent, untouched. The template source is split on HTMLMarker:
// the text before the first marker is the CSS remainder and the text between
// the first and second marker is the HTML. Both are trimmed of surrounding
// whitespace and of the literal's closing backtick/semicolon.
func Extract(rawStyles, rawTemplate string, opts Options) (*model.Extraction, error) {
	ext := &model.Extraction{}

	ext.CSSContent, ext.StylesMarker = splitStyles(rawStyles)

	remaining, html, htmlStatus := splitTemplate(rawTemplate)
	ext.HTMLMarker = htmlStatus

	if opts.Strict {
		if ext.StylesMarker == model.MarkerMissing {
			return nil, fmt.Errorf("%w: %q in styles source", ErrMarkerNotFound, StylesMarker)
		}
		switch ext.HTMLMarker {
		case model.MarkerMissing:
			return nil, fmt.Errorf("%w: %q in template source", ErrMarkerNotFound, HTMLMarker)
		case model.MarkerDuplicate:
			return nil, fmt.Errorf("%w: %q in template source", ErrDuplicateMarker, HTMLMarker)
		}
	}

	ext.RemainingCSS = CleanRemainingCSS(remaining)
	ext.HTMLContent = CleanHTML(html)
	ext.FullCSS = ext.CSSContent + "\n" + ext.RemainingCSS

	return ext, nil
}

// ExtractFiles reads both source files and runs Extract on their contents.
//
// A missing file is reported as a CLIError with ExitSourceNotFound.
func ExtractFiles(stylesPath, templatePath string, opts Options) (*model.Extraction, error) {
	rawStyles, err := readSource(stylesPath, "styles")
	if err != nil {
		return nil, err
	}
	rawTemplate, err := readSource(templatePath, "template")
	if err != nil {
		return nil, err
	}
	return Extract(rawStyles, rawTemplate, opts)
}

func readSource(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.WrapCLIError(
				model.ExitSourceNotFound,
				fmt.Sprintf("%s source not found: %s", what, path),
				err,
			)
		}
		return "", fmt.Errorf("failed to read %s source %s: %w", what, path, err)
	}
	return NormalizeNewlines(string(data)), nil
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// isSpace matches unicode.IsSpace plus the ASCII file, group, record and
// unit separators (0x1c to 0x1f), which the cleanup also strips.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// splitStyles returns everything after the first StylesMarker, or the whole
// input when the marker is absent.
func splitStyles(raw string) (string, model.MarkerStatus) {
	_, after, found := strings.Cut(raw, StylesMarker)
	if !found {
		return raw, model.MarkerMissing
	}
	return after, model.MarkerFound
}

// splitTemplate returns the CSS remainder and the HTML part of the template
// source. Text after a second HTMLMarker is dropped.
func splitTemplate(raw string) (remaining, html string, status model.MarkerStatus) {
	parts := strings.Split(raw, HTMLMarker)
	switch len(parts) {
	case 1:
		return "", raw, model.MarkerMissing
	case 2:
		return parts[0], parts[1], model.MarkerFound
	default:
		return parts[0], parts[1], model.MarkerDuplicate
	}
}

// CleanRemainingCSS trims whitespace and then removes a trailing "`;" or,
// failing that, a lone trailing backtick.
func CleanRemainingCSS(s string) string {
	s = strings.TrimFunc(s, isSpace)
	if strings.HasSuffix(s, "`;") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "`")
}

// CleanHTML trims whitespace, then removes one trailing semicolon and then
// one trailing backtick.
func CleanHTML(s string) string {
	s = strings.TrimFunc(s, isSpace)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSuffix(s, "`")
}
