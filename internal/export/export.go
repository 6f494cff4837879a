// Package export renders a validated site declaration into the configuration
// formats static-site generators consume.
package export

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitenav/internal/config"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Exporter renders a configuration file in one target format.
type Exporter interface {
	Format() config.ExportFormat
	Export(w io.Writer, f *config.File) error
}

// For returns the exporter for format.
func For(format config.ExportFormat) (Exporter, error) {
	switch format {
	case config.ExportStarlight:
		return StarlightExporter{}, nil
	case config.ExportHugo:
		return HugoExporter{}, nil
	case config.ExportYAML:
		return YAMLExporter{}, nil
	default:
		return nil, ferrors.ValidationError("unsupported export format").
			WithContext("format", string(format)).
			Build()
	}
}

// Render validates f and returns its rendering in format. Invalid
// declarations are refused.
func Render(f *config.File, format config.ExportFormat) ([]byte, error) {
	if err := config.Validate(f); err != nil {
		return nil, err
	}
	exp, err := For(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := exp.Export(&buf, f); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryExport, "failed to render export").
			Fatal().
			WithContext("format", string(format)).
			Build()
	}
	return buf.Bytes(), nil
}

// WriteFile renders f and writes it to output, creating parent directories.
// An empty output or "-" writes to stdout.
func WriteFile(f *config.File, format config.ExportFormat, output string, stdout io.Writer) error {
	data, err := Render(f, format)
	if err != nil {
		return err
	}
	if output == "" || output == "-" {
		_, err := stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
				WithContext("output", output).
				Build()
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write export").
			WithContext("output", output).
			Build()
	}
	slog.Info("Exported site configuration", logfields.Format(string(format)), logfields.Output(output))
	return nil
}
