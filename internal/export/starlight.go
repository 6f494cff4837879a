package export

import (
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// StarlightExporter writes the object passed to the Starlight integration:
// {"title": ..., "social": {...}, "sidebar": [...]}.
type StarlightExporter struct{}

func (StarlightExporter) Format() config.ExportFormat { return config.ExportStarlight }

func (StarlightExporter) Export(w io.Writer, f *config.File) error {
	cfg := f.Site
	if cfg.Sidebar == nil {
		cfg.Sidebar = []site.NavNode{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(&cfg)
}
