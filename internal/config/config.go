// Package config loads and writes the sitenav configuration file.
//
// The file carries the site declaration at its top level (title, social,
// sidebar) next to the tool sections `content` and `export`:
//
//	title: My Site
//	social:
//	  github: https://github.com/example
//	sidebar:
//	  - label: Resume
//	    link: /resume
//	content:
//	  dir: src/content/docs
//	export:
//	  format: starlight
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = "sitenav.yaml"

// File is a parsed configuration file.
type File struct {
	Site    site.SiteConfig
	Content ContentConfig
	Export  ExportConfig
}

// ContentConfig locates the pages the sidebar links point to.
type ContentConfig struct {
	Dir        string   `yaml:"dir,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
	// Ignore lists content-relative routes (e.g. /404) that may exist without a sidebar entry.
	Ignore []string `yaml:"ignore,omitempty"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format ExportFormat `yaml:"format,omitempty"`
	Output string       `yaml:"output,omitempty"`
}

// decodeDoc is the on-disk shape used while reading.
type decodeDoc struct {
	Title   string         `yaml:"title"`
	Social  site.Social    `yaml:"social"`
	Sidebar []yaml.Node    `yaml:"sidebar"`
	Content *ContentConfig `yaml:"content"`
	Export  *ExportConfig  `yaml:"export"`
}

// encodeDoc is the on-disk shape used while writing.
type encodeDoc struct {
	Title   string         `yaml:"title"`
	Social  site.Social    `yaml:"social,omitempty"`
	Sidebar []site.NavNode `yaml:"sidebar"`
	Content *ContentConfig `yaml:"content,omitempty"`
	Export  *ExportConfig  `yaml:"export,omitempty"`
}

// Load reads, expands and decodes the configuration at path. It does not
// validate the site declaration; see LoadSite.
func Load(path string) (*File, error) {
	if _, err := LoadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithContext(logfields.KeyConfigPath, path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read configuration").
			WithContext(logfields.KeyConfigPath, path).
			Build()
	}

	f, err := Parse(data)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext(logfields.KeyConfigPath, path)
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes configuration bytes. ${VAR} references are expanded from the
// environment first; unknown top-level keys are rejected.
func Parse(data []byte) (*File, error) {
	expanded := ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var doc decodeDoc
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
			Fatal().
			UserAction().
			Build()
	}

	sidebar, err := site.DecodeSidebar(doc.Sidebar)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse sidebar").
			Fatal().
			UserAction().
			Build()
	}

	f := &File{
		Site: site.SiteConfig{
			Title:   doc.Title,
			Social:  doc.Social,
			Sidebar: sidebar,
		},
	}
	if doc.Content != nil {
		f.Content = *doc.Content
	}
	if doc.Export != nil {
		f.Export = *doc.Export
	}
	if err := applyDefaults(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Marshal renders f back to YAML. Default-valued tool sections are omitted.
func Marshal(f *File) ([]byte, error) {
	doc := encodeDoc{
		Title:   f.Site.Title,
		Social:  f.Site.Social,
		Sidebar: f.Site.Sidebar,
	}
	if !f.Content.isDefault() {
		c := f.Content
		doc.Content = &c
	}
	if !f.Export.isDefault() {
		e := f.Export
		doc.Export = &e
	}
	if doc.Sidebar == nil {
		doc.Sidebar = []site.NavNode{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}
	return buf.Bytes(), nil
}

// LoadSite loads the configuration at path and validates the site declaration.
func LoadSite(path string) (*File, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(f); err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext(logfields.KeyConfigPath, path)
		}
		return nil, err
	}
	return f, nil
}
