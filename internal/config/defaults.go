package config

import (
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/foundation/normalization"
)

// ExportFormat names a target format of the export command.
type ExportFormat string

const (
	ExportStarlight ExportFormat = "starlight"
	ExportHugo      ExportFormat = "hugo"
	ExportYAML      ExportFormat = "yaml"
)

var exportFormatNormalizer = normalization.NewNormalizer(map[string]ExportFormat{
	"starlight": ExportStarlight,
	"astro":     ExportStarlight,
	"json":      ExportStarlight,
	"hugo":      ExportHugo,
	"yaml":      ExportYAML,
	"sitenav":   ExportYAML,
}, ExportStarlight)

// NormalizeExportFormat maps a user spelling onto an ExportFormat. Empty input
// yields the default (starlight).
func NormalizeExportFormat(raw string) (ExportFormat, error) {
	return exportFormatNormalizer.NormalizeWithError(raw)
}

// ExportFormats lists the accepted export format spellings.
func ExportFormats() []string {
	return exportFormatNormalizer.ValidKeys()
}

// Defaults for the content section.
const DefaultContentDir = "src/content/docs"

var defaultExtensions = []string{".md", ".mdx"}

// DefaultExtensions returns the page extensions searched when none are configured.
func DefaultExtensions() []string {
	return slices.Clone(defaultExtensions)
}

func applyDefaults(f *File) error {
	if f.Content.Dir == "" {
		f.Content.Dir = DefaultContentDir
	}
	if len(f.Content.Extensions) == 0 {
		f.Content.Extensions = DefaultExtensions()
	}
	for i, ext := range f.Content.Extensions {
		if !strings.HasPrefix(ext, ".") {
			f.Content.Extensions[i] = "." + ext
		}
	}

	format, err := NormalizeExportFormat(string(f.Export.Format))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid export format").
			Fatal().
			UserAction().
			WithContext("field", "export.format").
			Build()
	}
	f.Export.Format = format
	return nil
}

func (c ContentConfig) isDefault() bool {
	return (c.Dir == "" || c.Dir == DefaultContentDir) &&
		(len(c.Extensions) == 0 || slices.Equal(c.Extensions, defaultExtensions)) &&
		len(c.Ignore) == 0
}

func (e ExportConfig) isDefault() bool {
	return (e.Format == "" || e.Format == ExportStarlight) && e.Output == ""
}
