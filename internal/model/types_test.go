package model

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarkerStatus_String verifies the string form used in JSON output and logs.
func TestMarkerStatus_String(t *testing.T) {
	tests := []struct {
		status   MarkerStatus
		expected string
	}{
		{MarkerFound, "found"},
		{MarkerMissing, "missing"},
		{MarkerDuplicate, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestMarkerStatus_IsValid(t *testing.T) {
	assert.True(t, MarkerFound.IsValid())
	assert.True(t, MarkerMissing.IsValid())
	assert.True(t, MarkerDuplicate.IsValid())
	assert.False(t, MarkerStatus("absent").IsValid())
	assert.False(t, MarkerStatus("").IsValid())
}

// TestParseArtifactKind verifies string-to-kind conversion, including the
// values accepted by the --only flag.
func TestParseArtifactKind(t *testing.T) {
	tests := []struct {
		input    string
		expected ArtifactKind
		hasError bool
	}{
		{"styles", ArtifactStyles, false},
		{"template", ArtifactTemplate, false},
		{"Template", ArtifactTemplate, false},
		{"html", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseArtifactKind(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestAllArtifacts(t *testing.T) {
	require.Len(t, AllArtifacts, 2)
	assert.Equal(t, ArtifactStyles, AllArtifacts[0])
	assert.Equal(t, ArtifactTemplate, AllArtifacts[1])
	for _, k := range AllArtifacts {
		assert.True(t, k.IsValid())
	}
}

func TestExtraction_Payload(t *testing.T) {
	e := &Extraction{FullCSS: "a{}\nb{}", HTMLContent: "<div></div>"}
	assert.Equal(t, "a{}\nb{}", e.Payload(ArtifactStyles))
	assert.Equal(t, "<div></div>", e.Payload(ArtifactTemplate))
}

// TestExtraction_Degraded checks that any non-found marker marks the run as degraded.
func TestExtraction_Degraded(t *testing.T) {
	tests := []struct {
		name   string
		styles MarkerStatus
		html   MarkerStatus
		want   bool
	}{
		{"both found", MarkerFound, MarkerFound, false},
		{"styles missing", MarkerMissing, MarkerFound, true},
		{"html missing", MarkerFound, MarkerMissing, true},
		{"html duplicate", MarkerFound, MarkerDuplicate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Extraction{StylesMarker: tt.styles, HTMLMarker: tt.html}
			assert.Equal(t, tt.want, e.Degraded())
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitOutOfDate, "generated files are out of date")
		assert.Equal(t, ExitOutOfDate, err.Code)
		assert.Equal(t, "generated files are out of date", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitWriteFailed, "failed to write styles.ts", inner)
		assert.Equal(t, ExitWriteFailed, err.Code)
		assert.Equal(t, "failed to write styles.ts: permission denied", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		err := WrapCLIError(ExitSourceNotFound, "source file not found", fs.ErrNotExist)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}
