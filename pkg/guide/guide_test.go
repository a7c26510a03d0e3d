package guide

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedChapters(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	chapters := g.Chapters()
	require.Len(t, chapters, 7)

	// Reading order follows the filename numbers
	for i, chapter := range chapters {
		assert.Equal(t, i+1, chapter.Number)
		assert.NotEmpty(t, chapter.Slug)
		assert.NotEmpty(t, chapter.Title)
	}

	assert.Equal(t, "getting-started", chapters[0].Slug)
	assert.Equal(t, "Getting started", chapters[0].Title)
	assert.Equal(t, "http-api", chapters[6].Slug)
}

func TestFind(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		slug string
	}{
		{"by slug", "datasets", "datasets"},
		{"by number", "3", "datasets"},
		{"by padded number", "03", "datasets"},
		{"unknown slug", "penguins", ""},
		{"unknown number", "42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapter, err := g.Find(tt.ref)
			if tt.slug == "" {
				assert.ErrorIs(t, err, ErrChapterNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slug, chapter.Slug)
		})
	}
}

func TestSuggest(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "datasets", g.Suggest("datsets"))
	assert.Equal(t, "k-means", g.Suggest("kmeans"))
	assert.Empty(t, g.Suggest("fourier-transforms"))
}

func TestHTMLRendering(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	chapter, err := g.Find("http-api")
	require.NoError(t, err)

	html, err := chapter.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	// GFM tables render as real tables
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "/v1/datasets")

	assert.True(t, strings.HasPrefix(chapter.Markdown(), "# HTTP API"))
}

func TestLoadRejectsBadChapterNames(t *testing.T) {
	fsys := fstest.MapFS{
		"chapters/intro.md": {Data: []byte("# Intro\n")},
	}

	_, err := loadFS(fsys, "chapters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NN-slug.md")
}

func TestLoadRejectsMissingHeading(t *testing.T) {
	fsys := fstest.MapFS{
		"chapters/01-first-steps.md": {Data: []byte("No heading here, just prose.\n")},
	}

	_, err := loadFS(fsys, "chapters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first-steps")
	assert.Contains(t, err.Error(), "heading")
}
