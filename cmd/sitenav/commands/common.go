package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/internal/config"
)

// Global is passed to every command's Run method.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitenav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the site declaration"`
	Lint     LintCmd     `cmd:"" help:"Lint the sidebar against the content tree"`
	Init     InitCmd     `cmd:"" help:"Write a configuration file holding the default site declaration"`
	Export   ExportCmd   `cmd:"" help:"Export the site declaration for a static-site generator"`
	Tree     TreeCmd     `cmd:"" help:"Print the sidebar as a tree"`
	Watch    WatchCmd    `cmd:"" help:"Re-check the configuration on every change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func configPath(root *CLI) string {
	if root == nil || root.Config == "" {
		return config.DefaultPath
	}
	return root.Config
}
