package site

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWalk_PreOrder(t *testing.T) {
	sidebar := []NavNode{
		Link("a", "/a"),
		Group("g", Link("b", "/b"), Group("h", Link("c", "/c"))),
		Link("d", "/d"),
	}

	var labels []string
	var paths []string
	require.NoError(t, Walk(sidebar, func(path NodePath, node NavNode) error {
		labels = append(labels, node.NodeLabel())
		paths = append(paths, path.String())
		return nil
	}))

	assert.Equal(t, []string{"a", "g", "b", "h", "c", "d"}, labels)
	assert.Equal(t, []string{"[0]", "[1]", "[1 0]", "[1 1]", "[1 1 0]", "[2]"}, paths)
}

func TestWalk_StopsOnError(t *testing.T) {
	stop := errors.New("stop here")
	visited := 0
	err := Walk(Default().Sidebar, func(_ NodePath, _ NavNode) error {
		visited++
		if visited == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, visited)
}

func TestNodePath_ChildDoesNotAlias(t *testing.T) {
	base := make(NodePath, 1, 8)
	a := base.Child(1)
	b := base.Child(2)
	assert.Equal(t, NodePath{0, 1}, a)
	assert.Equal(t, NodePath{0, 2}, b)
	assert.True(t, a.Equal(NodePath{0, 1}))
	assert.False(t, a.Equal(b))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Josh Deeden", cfg.Title)
	assert.Equal(t, []string{"github", "linkedin"}, cfg.Social.Platforms())
	assert.Len(t, Links(cfg), 14)
	assert.Equal(t, 3, Depth(cfg))

	// Fresh value per call.
	other := Default()
	other.Sidebar[0].(*LinkNode).Label = "changed"
	assert.Equal(t, "Resume", cfg.Sidebar[0].NodeLabel())
}

func TestSiteConfig_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)

	var decoded SiteConfig
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, Default(), &decoded)
}

func TestSiteConfig_UnmarshalYAML(t *testing.T) {
	input := `
title: Test
social:
  github: https://github.com/example
sidebar:
  - label: Home
    link: /
  - label: Docs
    items:
      - label: Intro
        link: /docs/intro
      - label: Empty
        items: []
`
	var cfg SiteConfig
	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))
	require.Len(t, cfg.Sidebar, 2)
	assert.Equal(t, Link("Home", "/"), cfg.Sidebar[0])

	docs, ok := cfg.Sidebar[1].(*GroupNode)
	require.True(t, ok)
	require.Len(t, docs.Items, 2)
	assert.Equal(t, Link("Intro", "/docs/intro"), docs.Items[0])
	assert.Empty(t, docs.Items[1].(*GroupNode).Items)
}

func TestSiteConfig_UnmarshalYAMLRejectsAmbiguousNodes(t *testing.T) {
	tests := map[string]string{
		"both":    "sidebar:\n  - label: X\n    link: /x\n    items: []\n",
		"neither": "sidebar:\n  - label: X\n",
		"scalar":  "sidebar:\n  - just-a-string\n",
		"unknown": "sidebar:\n  - label: X\n    link: /x\n    badge: new\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg SiteConfig
			assert.Error(t, yaml.Unmarshal([]byte(input), &cfg))
		})
	}
}

func TestSiteConfig_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Default())
	require.NoError(t, err)

	var decoded SiteConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Default(), &decoded)

	var bad SiteConfig
	assert.Error(t, json.Unmarshal([]byte(`{"sidebar":[{"label":"x"}]}`), &bad))
}

func TestIsKnownPlatform(t *testing.T) {
	assert.True(t, IsKnownPlatform("github"))
	assert.True(t, IsKnownPlatform("linkedin"))
	assert.False(t, IsKnownPlatform("myspace"))
}
