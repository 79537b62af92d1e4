// Package scaffold renders the two generated TypeScript modules around the
// extracted payloads and recovers payloads from already generated files.
//
// The scaffolding is held in embedded text/template files. Payloads are
// inserted verbatim: text/template does not escape, so backticks and ${...}
// expressions in the CSS/HTML reach the TypeScript template literal intact.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/shinji-kodama/widgetgen/internal/model"
)

// templatesFS embeds the scaffolding for both artifacts.
//
//go:embed templates/*.tmpl
var templatesFS embed.FS

// ErrScaffoldMismatch is returned by Parse when a file does not start and
// end with the expected scaffolding.
var ErrScaffoldMismatch = errors.New("file does not match generated scaffolding")

// sentinel splits a rendered file into scaffolding prefix and suffix.
const sentinel = "\x00payload\x00"

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// templateData is the value passed to the scaffolding templates.
type templateData struct {
	Payload string
}

// FileName returns the conventional output file name for an artifact.
func FileName(kind model.ArtifactKind) string {
	return kind.String() + ".ts"
}

// Render wraps payload in the scaffolding for kind.
func Render(kind model.ArtifactKind, payload string) ([]byte, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("cannot render unknown artifact %q", kind)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, FileName(kind)+".tmpl", templateData{Payload: payload}); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", FileName(kind), err)
	}
	return buf.Bytes(), nil
}

// RenderAll renders every artifact from an extraction. Nothing is written;
// callers get both files or an error.
func RenderAll(ext *model.Extraction) (map[model.ArtifactKind][]byte, error) {
	out := make(map[model.ArtifactKind][]byte, len(model.AllArtifacts))
	for _, kind := range model.AllArtifacts {
		data, err := Render(kind, ext.Payload(kind))
		if err != nil {
			return nil, err
		}
		out[kind] = data
	}
	return out, nil
}

// Parse returns the payload embedded in a file previously produced by Render.
func Parse(kind model.ArtifactKind, generated []byte) (string, error) {
	prefix, suffix, err := scaffolding(kind)
	if err != nil {
		return "", err
	}

	text := string(generated)
	if len(text) < len(prefix)+len(suffix) ||
		!strings.HasPrefix(text, prefix) ||
		!strings.HasSuffix(text, suffix) {
		return "", fmt.Errorf("%w: %s", ErrScaffoldMismatch, FileName(kind))
	}
	return text[len(prefix) : len(text)-len(suffix)], nil
}

func scaffolding(kind model.ArtifactKind) (prefix, suffix string, err error) {
	rendered, err := Render(kind, sentinel)
	if err != nil {
		return "", "", err
	}
	prefix, suffix, ok := strings.Cut(string(rendered), sentinel)
	if !ok {
		return "", "", fmt.Errorf("scaffolding for %s has no payload slot", FileName(kind))
	}
	return prefix, suffix, nil
}
