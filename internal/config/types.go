// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/traitkit/pkg/trait"
)

const (
	// ColorSchemeAuto follows the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// DefaultOutputFileName is the default name of generated files.
	DefaultOutputFileName OutputFileName = "zz_traits_gen.go"
	// DefaultRuntimeImport is the trait runtime used by generated code.
	DefaultRuntimeImport ImportPath = "github.com/invowk/traitkit/pkg/trait"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFileName is the sentinel error wrapped by InvalidOutputFileNameError.
	ErrInvalidOutputFileName = errors.New("invalid output file name")
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidImportPath is the sentinel error wrapped by InvalidImportPathError.
	ErrInvalidImportPath = errors.New("invalid import path")
	// ErrInvalidGenerateConfig is the sentinel error wrapped by InvalidGenerateConfigError.
	ErrInvalidGenerateConfig = errors.New("invalid generate config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFileName is the base name of a generated Go file.
	OutputFileName string

	// InvalidOutputFileNameError wraps ErrInvalidOutputFileName.
	InvalidOutputFileNameError struct {
		Value  OutputFileName
		Reason string
	}

	// PackageName is a Go package clause override. Empty means "use the
	// declaration file's package".
	PackageName string

	// InvalidPackageNameError wraps ErrInvalidPackageName.
	InvalidPackageNameError struct {
		Value PackageName
	}

	// ImportPath is a Go import path.
	ImportPath string

	// InvalidImportPathError wraps ErrInvalidImportPath.
	InvalidImportPathError struct {
		Value ImportPath
	}

	// InvalidGenerateConfigError collects the field errors of a GenerateConfig.
	InvalidGenerateConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError collects the field errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Generate GenerateConfig `json:"generate" mapstructure:"generate"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
	}

	// GenerateConfig configures `traitkit generate`.
	GenerateConfig struct {
		// Output is the generated file name, relative to the declaration file.
		Output OutputFileName `json:"output" mapstructure:"output"`
		// Package overrides the package clause of generated files.
		Package PackageName `json:"package" mapstructure:"package"`
		// RuntimeImport is the import path of the trait runtime.
		RuntimeImport ImportPath `json:"runtime_import" mapstructure:"runtime_import"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Output:        DefaultOutputFileName,
			RuntimeImport: DefaultRuntimeImport,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns an *InvalidConfigError if any field is invalid.
func (c Config) Validate() error {
	if valid, errs := c.IsValid(); !valid {
		return errs[0]
	}
	return nil
}

// IsValid reports whether every section is valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Generate.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid reports whether the output name, package and import path are valid.
func (c GenerateConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Package.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.RuntimeImport.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidGenerateConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid delegates to ColorScheme.IsValid.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// String returns the scheme name.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid reports whether cs is auto, dark or light.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the file name.
func (n OutputFileName) String() string { return string(n) }

// IsValid requires a bare file name ending in ".go".
func (n OutputFileName) IsValid() (bool, []error) {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return false, []error{&InvalidOutputFileNameError{Value: n, Reason: "must not be empty"}}
	case strings.ContainsAny(s, `/\`):
		return false, []error{&InvalidOutputFileNameError{Value: n, Reason: "must not contain a directory"}}
	case !strings.HasSuffix(s, ".go") || s == ".go":
		return false, []error{&InvalidOutputFileNameError{Value: n, Reason: "must end in .go"}}
	case strings.HasSuffix(s, "_test.go"):
		return false, []error{&InvalidOutputFileNameError{Value: n, Reason: "must not be a test file"}}
	}
	return true, nil
}

// String returns the package name.
func (p PackageName) String() string { return string(p) }

// IsValid accepts the empty name and Go identifiers.
func (p PackageName) IsValid() (bool, []error) {
	if p == "" || trait.IsIdentifier(string(p)) {
		return true, nil
	}
	return false, []error{&InvalidPackageNameError{Value: p}}
}

// String returns the import path.
func (p ImportPath) String() string { return string(p) }

// IsValid requires a non-empty path without whitespace.
func (p ImportPath) IsValid() (bool, []error) {
	if p == "" || strings.ContainsFunc(string(p), isSpace) {
		return false, []error{&InvalidImportPathError{Value: p}}
	}
	return true, nil
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidOutputFileNameError) Error() string {
	return fmt.Sprintf("invalid output file name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidOutputFileName.
func (e *InvalidOutputFileNameError) Unwrap() error { return ErrInvalidOutputFileName }

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must be a Go identifier", e.Value)
}

// Unwrap returns ErrInvalidPackageName.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// Error implements the error interface.
func (e *InvalidImportPathError) Error() string {
	return fmt.Sprintf("invalid import path %q", e.Value)
}

// Unwrap returns ErrInvalidImportPath.
func (e *InvalidImportPathError) Unwrap() error { return ErrInvalidImportPath }

// Error implements the error interface.
func (e *InvalidGenerateConfigError) Error() string {
	return fmt.Sprintf("invalid generate config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidGenerateConfig.
func (e *InvalidGenerateConfigError) Unwrap() error { return ErrInvalidGenerateConfig }

// Error implements the error interface.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
