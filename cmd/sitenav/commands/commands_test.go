package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

const testConfig = `title: Test Site
social:
  github: https://github.com/example
sidebar:
  - label: Resume
    link: /resume
  - label: Docs
    items:
      - label: Intro
        link: /docs/intro
`

// runCLI parses args like main does and runs the selected command in dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sitenav"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = ctx.Run(&Global{Out: &out})
	return out.String(), err
}

func setup(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sitenav.yaml"), []byte(body), 0o600))
	return dir
}

func exitCode(err error) int {
	return ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestValidateCmd(t *testing.T) {
	out, err := runCLI(t, setup(t, testConfig), "validate")
	require.NoError(t, err)
	assert.Equal(t, "✓ sitenav.yaml is valid (2 links, depth 2)\n", out)
}

func TestValidateCmd_Invalid(t *testing.T) {
	body := "sidebar:\n  - label: A\n    link: /x\n  - label: B\n    link: /x\n"
	_, err := runCLI(t, setup(t, body), "validate")

	var dup *site.DuplicateLinkError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 7, exitCode(err))

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, "[1]", ce.Context()["node_path"])
}

func TestValidateCmd_MissingConfig(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "validate")
	assert.Equal(t, 3, exitCode(err))
}

func TestValidateCmd_ConfigFlag(t *testing.T) {
	dir := setup(t, testConfig)
	require.NoError(t, os.Rename(filepath.Join(dir, "sitenav.yaml"), filepath.Join(dir, "nav.yaml")))
	out, err := runCLI(t, dir, "-c", "nav.yaml", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "nav.yaml is valid")
}

func TestLintCmd(t *testing.T) {
	t.Run("no content dir", func(t *testing.T) {
		out, err := runCLI(t, setup(t, testConfig), "lint")
		require.NoError(t, err)
		assert.Contains(t, out, "passes linting")
	})

	t.Run("missing page is an error", func(t *testing.T) {
		dir := setup(t, testConfig)
		docs := filepath.Join(dir, "src", "content", "docs")
		require.NoError(t, os.MkdirAll(docs, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(docs, "resume.md"), []byte("# Resume\n"), 0o600))

		out, err := runCLI(t, dir, "lint")
		require.Error(t, err)
		assert.Equal(t, 2, exitCode(err))
		assert.Contains(t, out, "missing-page")
	})

	t.Run("warnings exit 1", func(t *testing.T) {
		body := testConfig + "  - label: resume\n    link: /other\n"
		_, err := runCLI(t, setup(t, body), "lint", "--no-content")
		require.ErrorIs(t, err, errLintWarnings)
		assert.Equal(t, 1, exitCode(err))
	})

	t.Run("quiet ignores warnings", func(t *testing.T) {
		body := testConfig + "  - label: resume\n    link: /other\n"
		_, err := runCLI(t, setup(t, body), "lint", "--no-content", "--quiet")
		require.NoError(t, err)
	})

	t.Run("explicit content dir must exist", func(t *testing.T) {
		_, err := runCLI(t, setup(t, testConfig), "lint", "--content-dir", "nope")
		assert.Equal(t, 3, exitCode(err))
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, setup(t, testConfig), "lint", "--format", "json", "--no-content")
		require.NoError(t, err)
		var parsed lint.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(out), &parsed))
		assert.Equal(t, 3, parsed.NodesTotal)
	})
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	_, err = runCLI(t, dir, "validate")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "init")
	assert.Equal(t, 4, exitCode(err))

	_, err = runCLI(t, dir, "init", "--force")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "init", "-o", "nested")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "nested", "sitenav.yaml"))
}

func TestExportCmd(t *testing.T) {
	dir := setup(t, testConfig)

	out, err := runCLI(t, dir, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "Intro"`)

	out, err = runCLI(t, dir, "export", "-f", "HUGO")
	require.NoError(t, err)
	assert.Contains(t, out, "identifier: nav-1-0")

	_, err = runCLI(t, dir, "export", "-f", "yaml", "-o", "out/sitenav.yaml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "sitenav.yaml"))

	_, err = runCLI(t, dir, "export", "-f", "toml")
	assert.Equal(t, 2, exitCode(err))
}

func TestExportCmd_RefusesInvalid(t *testing.T) {
	body := "sidebar:\n  - label: Empty\n    items: []\n"
	_, err := runCLI(t, setup(t, body), "export")
	var group *site.EmptyGroupError
	require.ErrorAs(t, err, &group)
}

func TestTreeCmd(t *testing.T) {
	out, err := runCLI(t, setup(t, testConfig), "tree", "--paths")
	require.NoError(t, err)
	expected := "Test Site\n" +
		"├── Resume → /resume  [0]\n" +
		"└── Docs  [1]\n" +
		"    └── Intro → /docs/intro  [1 0]\n"
	assert.Equal(t, expected, out)
}

func TestRenderTree_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTree(&buf, site.Default(), false))
	out := buf.String()
	assert.Contains(t, out, "Josh Deeden\n├── Resume → /resume\n└── Challenges\n")
	assert.Contains(t, out, "    ├── Google Forms Killer\n    │   ├── The Challenge → /challenges/google-forms-killer/challenge\n")
	assert.Contains(t, out, "        └── Unit Tests → /challenges/function-refactor/tests\n")
}

func TestRenderTree_NilNodes(t *testing.T) {
	var typedNil *site.LinkNode
	cfg := &site.SiteConfig{Title: "T", Sidebar: []site.NavNode{
		site.Group("G", nil),
		typedNil,
	}}
	var buf bytes.Buffer
	require.NoError(t, RenderTree(&buf, cfg, true))
	expected := "T\n" +
		"├── G  [0]\n" +
		"│   └── (missing)  [0 0]\n" +
		"└── (missing)  [1]\n"
	assert.Equal(t, expected, buf.String())
}

func TestWatchCmd(t *testing.T) {
	dir := setup(t, testConfig)
	t.Chdir(dir)

	var out bytes.Buffer
	cmd := &WatchCmd{NoContent: true, Debounce: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, cmd.run(ctx, &Global{Out: &out}, &CLI{Config: "sitenav.yaml"}))
	assert.Contains(t, out.String(), "passes linting")
}
