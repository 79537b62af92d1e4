// Package config resolves where widgetgen reads its sources and writes its
// outputs.
//
// With no configuration at all the historical fixed paths under
// /opt/chtq/widget-cdn/src/ui are used. A config file may override them;
// YAML files are parsed with gopkg.in/yaml.v3 and JSON files may carry
// comments, which are stripped with github.com/tidwall/jsonc before the
// standard encoding/json decoder runs.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/widgetgen/internal/model"
)

const (
	// DefaultBaseDir is the directory the generator has always worked in.
	DefaultBaseDir = "/opt/chtq/widget-cdn/src/ui"

	DefaultStylesSource   = "extracted_styles.css"
	DefaultTemplateSource = "extracted_template.html"
	DefaultStylesOutput   = "styles.ts"
	DefaultTemplateOutput = "template.ts"
)

// Config is the on-disk configuration. File names that are not absolute
// are resolved against BaseDir.
type Config struct {
	BaseDir        string `yaml:"baseDir" json:"baseDir"`
	StylesSource   string `yaml:"stylesSource" json:"stylesSource"`
	TemplateSource string `yaml:"templateSource" json:"templateSource"`
	StylesOutput   string `yaml:"stylesOutput" json:"stylesOutput"`
	TemplateOutput string `yaml:"templateOutput" json:"templateOutput"`

	// Strict reports missing or duplicated markers as errors instead of
	// falling back to treating the whole file as payload.
	Strict bool `yaml:"strict" json:"strict"`
}

// Paths holds the four fully resolved file paths for one run.
type Paths struct {
	StylesSource   string `json:"stylesSource"`
	TemplateSource string `json:"templateSource"`
	StylesOutput   string `json:"stylesOutput"`
	TemplateOutput string `json:"templateOutput"`
}

// Output returns the output path for an artifact.
func (p Paths) Output(kind model.ArtifactKind) string {
	if kind == model.ArtifactStyles {
		return p.StylesOutput
	}
	return p.TemplateOutput
}

// Source returns the source file paired with an artifact.
func (p Paths) Source(kind model.ArtifactKind) string {
	if kind == model.ArtifactStyles {
		return p.StylesSource
	}
	return p.TemplateSource
}

// Default returns the configuration matching the original fixed paths.
func Default() *Config {
	return &Config{
		BaseDir:        DefaultBaseDir,
		StylesSource:   DefaultStylesSource,
		TemplateSource: DefaultTemplateSource,
		StylesOutput:   DefaultStylesOutput,
		TemplateOutput: DefaultTemplateOutput,
	}
}

// candidateFiles lists config file names in discovery priority order.
var candidateFiles = []string{
	"widgetgen.yaml",
	"widgetgen.yml",
	".widgetgen.yaml",
	"widgetgen.jsonc",
	"widgetgen.json",
}

// FindConfigFile looks for a config file in dir. It returns an empty string
// when none exists; running without a config file is the normal case.
func FindConfigFile(dir string) string {
	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads a config file on top of Default. Keys absent from the file
// keep their defaults, unknown keys are rejected, and a relative baseDir is
// taken relative to the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitConfigInvalid,
				fmt.Sprintf("config file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	case ".json", ".jsonc":
		err = decodeJSON(data, cfg)
	default:
		return nil, model.NewCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension %q (use .yaml, .yml, .json or .jsonc)", ext),
		)
	}
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("failed to parse config file %s", path),
			err,
		)
	}

	if cfg.BaseDir != "" && !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF; that just means "all defaults".
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, cfg *Config) error {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Resolve joins every relative file name with BaseDir.
func (c *Config) Resolve() Paths {
	return Paths{
		StylesSource:   c.resolve(c.StylesSource),
		TemplateSource: c.resolve(c.TemplateSource),
		StylesOutput:   c.resolve(c.StylesOutput),
		TemplateOutput: c.resolve(c.TemplateOutput),
	}
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.BaseDir, name)
}
