package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a single problem found in a Config.
type ValidationError struct {
	// Field is the config key that failed validation (e.g., "stylesOutput").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate checks the config and returns every problem found (empty list =
// valid configuration).
//
// Checks performed:
//   - every file name is set
//   - no output path equals an input path, which would destroy a source
//   - the two outputs are distinct files
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	fields := []struct {
		name  string
		value string
	}{
		{"stylesSource", c.StylesSource},
		{"templateSource", c.TemplateSource},
		{"stylesOutput", c.StylesOutput},
		{"templateOutput", c.TemplateOutput},
	}
	for _, f := range fields {
		if f.value == "" {
			errs = append(errs, ValidationError{Field: f.name, Message: "must not be empty"})
		}
	}
	if len(errs) > 0 {
		// Path comparisons below are meaningless with empty names.
		return errs
	}

	p := c.Resolve()
	for _, out := range []struct {
		name string
		path string
	}{
		{"stylesOutput", p.StylesOutput},
		{"templateOutput", p.TemplateOutput},
	} {
		if out.path == p.StylesSource || out.path == p.TemplateSource {
			errs = append(errs, ValidationError{
				Field:   out.name,
				Message: fmt.Sprintf("%s would overwrite a source file", out.path),
			})
		}
	}

	if p.StylesOutput == p.TemplateOutput {
		errs = append(errs, ValidationError{
			Field:   "templateOutput",
			Message: fmt.Sprintf("%s is also the styles output", p.TemplateOutput),
		})
	}

	return errs
}

// Err folds the result of Validate into a single error, or nil.
func (c *Config) Err() error {
	problems := c.Validate()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, 0, len(problems))
	for i := range problems {
		errs = append(errs, &problems[i])
	}
	return errors.Join(errs...)
}
