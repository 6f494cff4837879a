package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	assert.NotEmpty(t, BuildTime, "BuildTime should be initialized")
	assert.NotEmpty(t, GitCommit, "GitCommit should be initialized")
}

func TestString(t *testing.T) {
	assert.Contains(t, String(), "sitenav "+Version)
	assert.Contains(t, String(), "commit "+GitCommit)
}
