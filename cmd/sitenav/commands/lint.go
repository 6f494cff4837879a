package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format     string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet      bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	ContentDir string `short:"d" name:"content-dir" help:"Content directory (overrides content.dir)"`
	NoContent  bool   `name:"no-content" help:"Skip the rules that need the content tree"`
}

// errLintWarnings makes the process exit 1 when only warnings were found.
var errLintWarnings = errors.New("lint found warnings")

func (l *LintCmd) Run(g *Global, root *CLI) error {
	path := configPath(root)
	f, err := config.Load(path)
	if err != nil {
		return err
	}

	pages, err := l.scan(f)
	if err != nil {
		return err
	}

	result := lint.NewLinter(&lint.Config{Ignore: f.Content.Ignore, Quiet: l.Quiet}).Lint(&f.Site, pages)
	if err := lint.NewFormatter(l.Format).Format(g.out(), result, path); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write lint report").Build()
	}

	// Errors block the build (exit 2), warnings exit 1.
	switch {
	case result.HasErrors():
		return ferrors.ValidationError(fmt.Sprintf("lint found %d error(s)", result.ErrorCount())).
			WithContext("config_path", path).
			Build()
	case result.HasWarnings() && !l.Quiet:
		return errLintWarnings
	}
	return nil
}

// scan indexes the content tree. Without --content-dir a missing directory
// only disables the content rules.
func (l *LintCmd) scan(f *config.File) (*content.Index, error) {
	if l.NoContent {
		return nil, nil
	}
	dir := f.Content.Dir
	if l.ContentDir != "" {
		dir = l.ContentDir
	}
	pages, err := content.Scan(dir, f.Content.Extensions)
	if err == nil {
		return pages, nil
	}
	if ce, ok := ferrors.AsClassified(err); ok && ce.Category() == ferrors.CategoryNotFound && l.ContentDir == "" {
		slog.Warn("Content directory not found, skipping content rules", logfields.ContentDir(dir))
		return nil, nil
	}
	return nil, err
}
