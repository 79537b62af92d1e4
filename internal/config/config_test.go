package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/widgetgen/internal/model"
)

// writeFile is a small fixture helper; configs are tiny so inline strings
// read better than testdata files.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault_ResolvesOriginalPaths verifies that the zero-config run uses
// the historical fixed locations.
func TestDefault_ResolvesOriginalPaths(t *testing.T) {
	p := Default().Resolve()

	assert.Equal(t, "/opt/chtq/widget-cdn/src/ui/extracted_styles.css", p.StylesSource)
	assert.Equal(t, "/opt/chtq/widget-cdn/src/ui/extracted_template.html", p.TemplateSource)
	assert.Equal(t, "/opt/chtq/widget-cdn/src/ui/styles.ts", p.StylesOutput)
	assert.Equal(t, "/opt/chtq/widget-cdn/src/ui/template.ts", p.TemplateOutput)
	assert.False(t, Default().Strict)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widgetgen.yaml", `
baseDir: widget/src/ui
stylesOutput: generated/styles.ts
strict: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "widget/src/ui"), cfg.BaseDir)
	assert.Equal(t, "generated/styles.ts", cfg.StylesOutput)
	assert.Equal(t, DefaultTemplateOutput, cfg.TemplateOutput, "unset keys keep defaults")
	assert.True(t, cfg.Strict)
}

// TestLoad_JSONC verifies comments and trailing commas are accepted.
func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widgetgen.jsonc", `{
		// generated files live next to the sources
		"baseDir": "/srv/widget/ui",
		"templateSource": "/tmp/template.html", /* absolute wins */
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.Resolve()
	assert.Equal(t, "/srv/widget/ui", cfg.BaseDir)
	assert.Equal(t, "/tmp/template.html", p.TemplateSource)
	assert.Equal(t, "/srv/widget/ui/extracted_styles.css", p.StylesSource)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"widgetgen.yaml", "widgetgen.json"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, dir, name, ""))
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml")},
		{"unknown yaml key", writeFile(t, dir, "typo.yaml", "baseDri: /x\n")},
		{"unknown json key", writeFile(t, dir, "typo.json", `{"outDir": "/x"}`)},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "baseDir: [\n")},
		{"unsupported extension", writeFile(t, dir, "widgetgen.toml", "baseDir = '/x'\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", FindConfigFile(dir))

	jsonPath := writeFile(t, dir, "widgetgen.json", "{}")
	assert.Equal(t, jsonPath, FindConfigFile(dir))

	// YAML takes priority over JSON when both exist.
	yamlPath := writeFile(t, dir, "widgetgen.yaml", "")
	assert.Equal(t, yamlPath, FindConfigFile(dir))
}

func TestPaths_OutputAndSource(t *testing.T) {
	p := Paths{
		StylesSource:   "a.css",
		TemplateSource: "a.html",
		StylesOutput:   "styles.ts",
		TemplateOutput: "template.ts",
	}
	assert.Equal(t, "styles.ts", p.Output(model.ArtifactStyles))
	assert.Equal(t, "template.ts", p.Output(model.ArtifactTemplate))
	assert.Equal(t, "a.css", p.Source(model.ArtifactStyles))
	assert.Equal(t, "a.html", p.Source(model.ArtifactTemplate))
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.Empty(t, Default().Validate())
		assert.NoError(t, Default().Err())
	})

	t.Run("empty names", func(t *testing.T) {
		cfg := Default()
		cfg.StylesSource = ""
		cfg.TemplateOutput = ""

		errs := cfg.Validate()
		require.Len(t, errs, 2)
		assert.Equal(t, "stylesSource", errs[0].Field)
		assert.Equal(t, "templateOutput", errs[1].Field)
	})

	t.Run("output overwrites source", func(t *testing.T) {
		cfg := Default()
		cfg.StylesOutput = cfg.StylesSource

		errs := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "stylesOutput", errs[0].Field)
		assert.Contains(t, errs[0].Error(), "would overwrite a source file")
	})

	t.Run("outputs collide", func(t *testing.T) {
		cfg := Default()
		cfg.TemplateOutput = filepath.Join(cfg.BaseDir, cfg.StylesOutput)

		err := cfg.Err()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "also the styles output")
	})
}
