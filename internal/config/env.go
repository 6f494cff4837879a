package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// envFiles are read from the working directory, in order, when present.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads the .env files that exist into the process environment.
// Variables already set in the environment are never overwritten. It returns
// the files that were loaded.
func LoadEnvFiles() ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat env file").
				WithContext(logfields.KeyFile, name).
				Build()
		}
		if err := godotenv.Load(name); err != nil {
			return loaded, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse env file").
				Fatal().
				WithContext(logfields.KeyFile, name).
				Build()
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${NAME} references with the value of the environment
// variable NAME (empty when unset). Bare $ text such as "$5" or "$HOME" is
// left as written.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}
