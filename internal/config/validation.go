package config

import (
	"errors"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// Validate checks the site declaration held by f. A violation is returned as a
// fatal config-category ClassifiedError whose cause is the typed site error
// and whose context locates the offending node or field.
func Validate(f *File) error {
	if err := site.Validate(&f.Site); err != nil {
		return Classify(err)
	}
	return nil
}

// Classify wraps a site validation error, attaching node_path, link, label
// or platform context depending on its kind.
func Classify(err error) *ferrors.ClassifiedError {
	b := ferrors.WrapError(err, ferrors.CategoryConfig, "site configuration is invalid").
		Fatal().
		UserAction()

	var (
		dup   *site.DuplicateLinkError
		label *site.EmptyLabelError
		group *site.EmptyGroupError
		link  *site.InvalidLinkFormatError
		url   *site.InvalidURLError
		nilN  *site.NilNodeError
	)
	switch {
	case errors.As(err, &dup):
		b.WithContext(logfields.KeyLink, dup.Path).
			WithContext(logfields.KeyNodePath, dup.NodePath.String()).
			WithContext("first_node_path", dup.First.String())
	case errors.As(err, &label):
		b.WithContext(logfields.KeyNodePath, label.NodePath.String())
	case errors.As(err, &group):
		b.WithContext(logfields.KeyNodePath, group.NodePath.String()).
			WithContext(logfields.KeyLabel, group.Label)
	case errors.As(err, &link):
		b.WithContext(logfields.KeyLink, link.Path).
			WithContext(logfields.KeyNodePath, link.NodePath.String())
	case errors.As(err, &nilN):
		b.WithContext(logfields.KeyNodePath, nilN.NodePath.String())
	case errors.As(err, &url):
		b.WithContext(logfields.KeyPlatform, url.Platform).
			WithContext("field", "social."+url.Platform)
	}
	return b.Build()
}
