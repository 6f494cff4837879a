package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

const initHeader = "# sitenav configuration: site title, social links and sidebar navigation.\n"

// DefaultFile returns a File holding the canonical site declaration with
// default tool settings.
func DefaultFile() *File {
	f := &File{Site: *site.Default()}
	_ = applyDefaults(f)
	return f
}

// Init writes the canonical configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.AlreadyExistsError("configuration file already exists (use --force to overwrite)").
			WithContext(logfields.KeyConfigPath, path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat configuration").
			WithContext(logfields.KeyConfigPath, path).
			Build()
	}

	data, err := Marshal(DefaultFile())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create configuration directory").
				WithContext(logfields.KeyConfigPath, path).
				Build()
		}
	}
	if err := os.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration").
			WithContext(logfields.KeyConfigPath, path).
			Build()
	}
	return nil
}
