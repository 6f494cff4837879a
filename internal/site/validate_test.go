package site

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidate_Scenarios(t *testing.T) {
	t.Run("single link", func(t *testing.T) {
		cfg := &SiteConfig{Sidebar: []NavNode{Link("Resume", "/resume")}}
		require.NoError(t, Validate(cfg))
	})

	t.Run("duplicate link across levels", func(t *testing.T) {
		cfg := &SiteConfig{Sidebar: []NavNode{
			Group("A", Link("A", "/x")),
			Link("B", "/x"),
		}}
		err := Validate(cfg)
		var dup *DuplicateLinkError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "/x", dup.Path)
		assert.Equal(t, NodePath{1}, dup.NodePath)
		assert.Equal(t, NodePath{0, 0}, dup.First)
	})

	t.Run("empty label", func(t *testing.T) {
		cfg := &SiteConfig{Sidebar: []NavNode{Link("", "/y")}}
		var empty *EmptyLabelError
		require.ErrorAs(t, Validate(cfg), &empty)
		assert.Equal(t, NodePath{0}, empty.NodePath)
	})

	t.Run("empty group", func(t *testing.T) {
		cfg := &SiteConfig{Sidebar: []NavNode{Group("Empty Group")}}
		var group *EmptyGroupError
		require.ErrorAs(t, Validate(cfg), &group)
		assert.Equal(t, NodePath{0}, group.NodePath)
	})

	t.Run("invalid social url", func(t *testing.T) {
		cfg := &SiteConfig{Social: Social{"github": "not-a-url"}}
		var bad *InvalidURLError
		require.ErrorAs(t, Validate(cfg), &bad)
		assert.Equal(t, "github", bad.Platform)
	})
}

func TestValidate_InvalidLinkFormat(t *testing.T) {
	for _, link := range []string{"resume", "", "https://example.com/resume"} {
		t.Run(link, func(t *testing.T) {
			cfg := &SiteConfig{Sidebar: []NavNode{Link("Resume", link)}}
			var bad *InvalidLinkFormatError
			require.ErrorAs(t, Validate(cfg), &bad)
			assert.Equal(t, link, bad.Path)
		})
	}
}

func TestValidate_SocialURLs(t *testing.T) {
	tests := []struct {
		platform string
		value    string
		valid    bool
	}{
		{"github", "https://github.com/gangster", true},
		{"mastodon", "https://hachyderm.io/@someone", true},
		{"email", "mailto:someone@example.com", true},
		{"email", "MAILTO:someone@example.com", true},
		{"email", "https://example.com/contact", true},
		{"github", "mailto:someone@example.com", false},
		{"email", "mailto:", false},
		{"email", "mailto:nobody", false},
		{"github", "https:github.com/gangster", false},
		{"github", "localhost:8080", false},
		{"github", "not-a-url:x", false},
		{"github", "https://", false},
		{"github", "github.com/gangster", false},
		{"github", "/relative", false},
		{"github", "http://[::1", false},
	}
	for _, tt := range tests {
		t.Run(tt.platform+"/"+tt.value, func(t *testing.T) {
			err := Validate(&SiteConfig{Social: Social{tt.platform: tt.value}})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var bad *InvalidURLError
			require.ErrorAs(t, err, &bad)
			assert.Equal(t, tt.platform, bad.Platform)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_NilNodes(t *testing.T) {
	var typedNil *LinkNode
	var nilGroup *GroupNode
	cfg := &SiteConfig{Sidebar: []NavNode{
		Group("G", nil),
		typedNil,
		Link("Ok", "/ok"),
		nilGroup,
	}}

	var missing *NilNodeError
	require.ErrorAs(t, Validate(cfg), &missing)
	assert.Equal(t, NodePath{0, 0}, missing.NodePath)
	assert.ErrorIs(t, missing, ErrInvalidConfig)

	issues := Issues(cfg)
	require.Len(t, issues, 3)
	for i, want := range []NodePath{{0, 0}, {1}, {3}} {
		require.ErrorAs(t, issues[i], &missing)
		assert.Equal(t, want, missing.NodePath)
	}

	assert.Equal(t, []string{"/ok"}, Links(cfg))
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(typedNil))
	assert.False(t, IsNil(Link("a", "/a")))
}

func TestValidate_PreOrderFirstError(t *testing.T) {
	cfg := &SiteConfig{
		Social: Social{"linkedin": "nope"},
		Sidebar: []NavNode{
			Link("Resume", "/resume"),
			Group("Outer",
				Group("", Link("Deep", "/deep")),
				Link("Bad", "no-slash"),
			),
			Group("Trailing"),
		},
	}

	var empty *EmptyLabelError
	require.ErrorAs(t, Validate(cfg), &empty)
	assert.Equal(t, NodePath{1, 0}, empty.NodePath)

	issues := Issues(cfg)
	require.Len(t, issues, 4)
	assert.IsType(t, &EmptyLabelError{}, issues[0])
	assert.IsType(t, &InvalidLinkFormatError{}, issues[1])
	assert.IsType(t, &EmptyGroupError{}, issues[2])
	assert.IsType(t, &InvalidURLError{}, issues[3])
}

func TestValidate_SocialCheckedInSortedOrder(t *testing.T) {
	cfg := &SiteConfig{Social: Social{"x": "bad-x", "github": "bad-github", "mastodon": "bad-m"}}
	var bad *InvalidURLError
	require.ErrorAs(t, Validate(cfg), &bad)
	assert.Equal(t, "github", bad.Platform)
}

func TestValidate_IdempotentAndDeterministic(t *testing.T) {
	cfg := &SiteConfig{Sidebar: []NavNode{
		Link("One", "/a"),
		Link("Two", "/a"),
		Link("Three", "/a"),
	}}
	first := Validate(cfg)
	for range 10 {
		again := Validate(cfg)
		require.Equal(t, first.Error(), again.Error())
	}
	assert.Len(t, Issues(cfg), 2)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := Default()
	before := Links(cfg)
	_ = Validate(cfg)
	_ = Issues(cfg)
	assert.Equal(t, before, Links(cfg))
}

func TestErrInvalidConfig_MatchesAllKinds(t *testing.T) {
	errs := []error{
		&DuplicateLinkError{Path: "/x"},
		&EmptyLabelError{},
		&EmptyGroupError{},
		&InvalidLinkFormatError{Path: "x"},
		&InvalidURLError{Platform: "github"},
		&NilNodeError{},
	}
	for _, err := range errs {
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%T should match ErrInvalidConfig", err)
	}
}
