package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shinji-kodama/widgetgen/internal/model"
)

// ErrNotRoundTrippable is returned by Wrap when no pair of source files can
// extract back to the given payloads.
var ErrNotRoundTrippable = errors.New("payload cannot be expressed as source files")

// Sources is a pair of source file contents in the layout Extract expects.
type Sources struct {
	Styles   string
	Template string
}

// For returns the source contents paired with an artifact.
func (s *Sources) For(kind model.ArtifactKind) string {
	if kind == model.ArtifactStyles {
		return s.Styles
	}
	return s.Template
}

// Wrap builds source files that Extract turns back into exactly fullCSS and
// html.
//
// fullCSS is split at a newline into the styles payload and the CSS
// remainder. The last newline whose tail survives the remainder cleanup
// unchanged is used: the tail must not start with whitespace and must not
// contain HTMLMarker, even once the closing backtick is appended. html has
// the same two restrictions.
func Wrap(fullCSS, html string) (*Sources, error) {
	if completesMarker(html) {
		return nil, fmt.Errorf("%w: html contains %q", ErrNotRoundTrippable, HTMLMarker)
	}
	if hasLeadingSpace(html) {
		return nil, fmt.Errorf("%w: html starts with whitespace", ErrNotRoundTrippable)
	}

	split := -1
	for i := strings.LastIndexByte(fullCSS, '\n'); i >= 0; i = strings.LastIndexByte(fullCSS[:i], '\n') {
		tail := fullCSS[i+1:]
		if !hasLeadingSpace(tail) && !completesMarker(tail) {
			split = i
			break
		}
	}
	if split < 0 {
		return nil, fmt.Errorf("%w: css has no usable line break", ErrNotRoundTrippable)
	}

	head, tail := fullCSS[:split], fullCSS[split+1:]
	return &Sources{
		Styles:   StylesMarker + head,
		Template: tail + "`;\n" + HTMLMarker + html + "`;\n",
	}, nil
}

// completesMarker reports whether s contains HTMLMarker on its own or once
// the backtick that closes its literal is appended.
func completesMarker(s string) bool {
	return strings.Contains(s+"`", HTMLMarker)
}

func hasLeadingSpace(s string) bool {
	return strings.TrimLeftFunc(s, isSpace) != s
}
