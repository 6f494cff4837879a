package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a frontmatter block that is never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

func readTitle(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return Title(data)
}

// Title returns the page title: the frontmatter `title` when set, otherwise
// the text of the first level-1 heading.
func Title(doc []byte) (string, error) {
	fm, body, err := SplitFrontmatter(doc)
	if err != nil {
		return "", err
	}
	if len(fm) > 0 {
		var fields struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
		if t := strings.TrimSpace(fields.Title); t != "" {
			return t, nil
		}
	}
	return FirstHeading(body), nil
}

// SplitFrontmatter separates a leading `---` delimited YAML block from the
// body. Documents without one return a nil frontmatter and the full input.
func SplitFrontmatter(doc []byte) (frontmatter, body []byte, err error) {
	nl := []byte("\n")
	if bytes.Contains(doc, []byte("\r\n")) {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(doc, open) {
		return nil, doc, nil
	}

	rest := doc[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	closing := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], nil
}

// FirstHeading returns the plain text of the first level-1 heading, or "".
func FirstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, body))
		return ast.WalkStop, nil
	})
	return title
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}
