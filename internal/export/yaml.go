package export

import (
	"io"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// YAMLExporter writes the normalized sitenav configuration; the output loads
// back through config.Load unchanged.
type YAMLExporter struct{}

func (YAMLExporter) Format() config.ExportFormat { return config.ExportYAML }

func (YAMLExporter) Export(w io.Writer, f *config.File) error {
	data, err := config.Marshal(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
