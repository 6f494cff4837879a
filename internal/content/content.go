// Package content indexes the page files of a documentation content tree so
// sidebar links can be matched against the pages they route to.
package content

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// Page is a content file and the route it is served under.
type Page struct {
	Route string // normalized route, e.g. /challenges/function-refactor/code
	File  string // slash-separated path relative to the content dir
	Title string // frontmatter title, else first level-1 heading, else empty
}

// Index maps routes to pages for one content directory.
type Index struct {
	Dir   string
	pages map[string]*Page
}

// Scan walks dir and indexes every file whose extension is in exts.
// Hidden files and directories are skipped. Two files resolving to the
// same route (docs/a.md and docs/a/index.md) are reported as an error.
func Scan(dir string, exts []string) (*Index, error) {
	ix := &Index{Dir: dir, pages: make(map[string]*Page)}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(name))) {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		route := RouteForFile(rel)

		if prev, dup := ix.pages[route]; dup {
			return ferrors.ContentError("two content files resolve to the same route").
				WithContext("route", route).
				WithContext(logfields.KeyFile, rel).
				WithContext("other_file", prev.File).
				Build()
		}

		title, err := readTitle(p)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryContent, "failed to read page").
				WithContext(logfields.KeyFile, rel).
				Build()
		}
		ix.pages[route] = &Page{Route: route, File: rel, Title: title}
		return nil
	})
	if err != nil {
		if _, ok := ferrors.AsClassified(err); ok {
			return nil, err
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("content directory not found").
				WithContext(logfields.KeyContentDir, dir).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan content directory").
			WithContext(logfields.KeyContentDir, dir).
			Build()
	}
	return ix, nil
}

// Lookup returns the page a sidebar link routes to.
func (ix *Index) Lookup(link string) (*Page, bool) {
	p, ok := ix.pages[NormalizeRoute(link)]
	return p, ok
}

// Pages returns all pages sorted by route.
func (ix *Index) Pages() []*Page {
	out := make([]*Page, 0, len(ix.pages))
	for _, p := range ix.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

// Len returns the number of indexed pages.
func (ix *Index) Len() int {
	return len(ix.pages)
}

// RouteForFile derives the route of a content-relative file path:
// "challenges/index.md" -> "/challenges", "Resume.md" -> "/resume".
func RouteForFile(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")
	return NormalizeRoute("/" + rel)
}

// NormalizeRoute lowercases a route, drops query and fragment, and trims
// trailing slashes (except for the root).
func NormalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	route = strings.ToLower(route)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	route = strings.TrimRight(route, "/")
	if route == "" {
		return "/"
	}
	return route
}
