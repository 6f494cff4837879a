package commands

import (
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/export"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Format string `short:"f" help:"Export format (starlight, hugo, yaml); defaults to export.format"`
	Output string `short:"o" help:"Output file, - for stdout; defaults to export.output"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	f, err := config.Load(configPath(root))
	if err != nil {
		return err
	}

	format := f.Export.Format
	if e.Format != "" {
		if format, err = config.NormalizeExportFormat(e.Format); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "unknown export format").
				WithContext("format", e.Format).
				WithContext("valid", config.ExportFormats()).
				Build()
		}
	}
	output := f.Export.Output
	if e.Output != "" {
		output = e.Output
	}

	return export.WriteFile(f, format, output, g.out())
}
