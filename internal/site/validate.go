package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidConfig is matched (errors.Is) by every validation error.
var ErrInvalidConfig = errors.New("invalid site configuration")

// DuplicateLinkError reports a link path used by more than one leaf.
type DuplicateLinkError struct {
	Path     string
	NodePath NodePath // position of the second occurrence
	First    NodePath // position of the first occurrence
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("duplicate link %q at %s (first used at %s)", e.Path, e.NodePath, e.First)
}

func (e *DuplicateLinkError) Is(target error) bool { return target == ErrInvalidConfig }

// EmptyLabelError reports a node without a label.
type EmptyLabelError struct {
	NodePath NodePath
}

func (e *EmptyLabelError) Error() string {
	return fmt.Sprintf("empty label at %s", e.NodePath)
}

func (e *EmptyLabelError) Is(target error) bool { return target == ErrInvalidConfig }

// EmptyGroupError reports a group without items.
type EmptyGroupError struct {
	NodePath NodePath
	Label    string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("group %q at %s has no items", e.Label, e.NodePath)
}

func (e *EmptyGroupError) Is(target error) bool { return target == ErrInvalidConfig }

// InvalidLinkFormatError reports a link that is not site-relative.
type InvalidLinkFormatError struct {
	Path     string
	NodePath NodePath
}

func (e *InvalidLinkFormatError) Error() string {
	return fmt.Sprintf("link %q at %s must start with /", e.Path, e.NodePath)
}

func (e *InvalidLinkFormatError) Is(target error) bool { return target == ErrInvalidConfig }

// NilNodeError reports a missing node, such as a nil entry in a group's items.
type NilNodeError struct {
	NodePath NodePath
}

func (e *NilNodeError) Error() string {
	return fmt.Sprintf("missing node at %s", e.NodePath)
}

func (e *NilNodeError) Is(target error) bool { return target == ErrInvalidConfig }

// InvalidURLError reports a social entry that is not an absolute URL.
type InvalidURLError struct {
	Platform string
	Value    string
	Cause    error
}

func (e *InvalidURLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("social %q: %q is not an absolute URL: %v", e.Platform, e.Value, e.Cause)
	}
	return fmt.Sprintf("social %q: %q is not an absolute URL", e.Platform, e.Value)
}

func (e *InvalidURLError) Unwrap() error { return e.Cause }

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidConfig }

// Validate checks the configuration invariants and returns the first
// violation in pre-order, left-to-right sidebar order, followed by social
// entries in sorted platform order. It returns nil for a valid configuration.
func Validate(cfg *SiteConfig) error {
	var first error
	check(cfg, func(err error) bool {
		first = err
		return false
	})
	return first
}

// Issues returns every violation Validate would report, in the same order.
func Issues(cfg *SiteConfig) []error {
	var all []error
	check(cfg, func(err error) bool {
		all = append(all, err)
		return true
	})
	return all
}

var errStop = errors.New("stop")

// check reports violations to emit until emit returns false.
func check(cfg *SiteConfig, emit func(error) bool) {
	seen := make(map[string]NodePath)
	err := Walk(cfg.Sidebar, func(path NodePath, node NavNode) error {
		for _, v := range checkNode(path, node, seen) {
			if !emit(v) {
				return errStop
			}
		}
		return nil
	})
	if err != nil {
		return
	}

	for _, platform := range cfg.Social.Platforms() {
		if v := checkSocial(platform, cfg.Social[platform]); v != nil {
			if !emit(v) {
				return
			}
		}
	}
}

func checkNode(path NodePath, node NavNode, seen map[string]NodePath) []error {
	if IsNil(node) {
		return []error{&NilNodeError{NodePath: path}}
	}
	var errs []error
	if node.NodeLabel() == "" {
		errs = append(errs, &EmptyLabelError{NodePath: path})
	}
	switch n := node.(type) {
	case *LinkNode:
		if len(n.Link) == 0 || n.Link[0] != '/' {
			errs = append(errs, &InvalidLinkFormatError{Path: n.Link, NodePath: path})
		}
		if prev, dup := seen[n.Link]; dup {
			errs = append(errs, &DuplicateLinkError{Path: n.Link, NodePath: path, First: prev})
		} else {
			seen[n.Link] = path
		}
	case *GroupNode:
		if len(n.Items) == 0 {
			errs = append(errs, &EmptyGroupError{NodePath: path, Label: n.Label})
		}
	}
	return errs
}

// checkSocial requires a scheme and a host. The only hostless form accepted
// is a mailto: address under the email platform.
func checkSocial(platform, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &InvalidURLError{Platform: platform, Value: raw, Cause: err}
	}
	if u.Scheme == "" {
		return &InvalidURLError{Platform: platform, Value: raw}
	}
	if platform == PlatformEmail && strings.EqualFold(u.Scheme, "mailto") {
		if u.Opaque == "" || !strings.Contains(u.Opaque, "@") {
			return &InvalidURLError{Platform: platform, Value: raw}
		}
		return nil
	}
	if u.Opaque != "" || u.Host == "" {
		return &InvalidURLError{Platform: platform, Value: raw}
	}
	return nil
}
