// Package guide serves the embedded workshop guide.
//
// Chapters are markdown files embedded into the binary, named
// NN-slug.md so the filename fixes both the reading order and the
// URL slug. Titles come from each chapter's first level-1 heading.
package guide

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrChapterNotFound is returned when a chapter doesn't exist
var ErrChapterNotFound = errors.New("chapter not found")

// suggestMaxDistance bounds how far a typo can be from a chapter slug
// before we stop offering it as a suggestion.
const suggestMaxDistance = 3

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Chapter is one section of the guide.
type Chapter struct {
	Number int    `json:"number"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`

	source []byte
}

// Markdown returns the chapter's raw markdown source.
func (c *Chapter) Markdown() string {
	return string(c.source)
}

// HTML renders the chapter to HTML with GitHub Flavored Markdown
// extensions enabled.
func (c *Chapter) HTML() (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(c.source, &buf); err != nil {
		return "", fmt.Errorf("failed to render chapter %q: %w", c.Slug, err)
	}
	return buf.String(), nil
}

// Guide is an ordered collection of chapters.
type Guide struct {
	chapters []Chapter
}

// Load parses every chapter from the embedded filesystem.
func Load() (*Guide, error) {
	return loadFS(chaptersFS, "chapters")
}

func loadFS(fsys fs.FS, dir string) (*Guide, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapters: %w", err)
	}

	guide := &Guide{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}

		number, slug, err := parseChapterName(name)
		if err != nil {
			return nil, err
		}

		source, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter %q: %w", name, err)
		}

		title, err := chapterTitle(source, slug)
		if err != nil {
			return nil, err
		}

		guide.chapters = append(guide.chapters, Chapter{
			Number: number,
			Slug:   slug,
			Title:  title,
			source: source,
		})
	}

	if len(guide.chapters) == 0 {
		return nil, fmt.Errorf("no chapters found")
	}

	sort.Slice(guide.chapters, func(i, j int) bool {
		return guide.chapters[i].Number < guide.chapters[j].Number
	})

	return guide, nil
}

// Chapters returns all chapters in reading order.
func (g *Guide) Chapters() []Chapter {
	out := make([]Chapter, len(g.chapters))
	copy(out, g.chapters)
	return out
}

// Find looks a chapter up by slug or chapter number.
// Returns ErrChapterNotFound if no chapter matches.
func (g *Guide) Find(ref string) (*Chapter, error) {
	ref = strings.TrimSpace(ref)

	if number, err := strconv.Atoi(ref); err == nil {
		for i := range g.chapters {
			if g.chapters[i].Number == number {
				return &g.chapters[i], nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrChapterNotFound, ref)
	}

	for i := range g.chapters {
		if g.chapters[i].Slug == ref {
			return &g.chapters[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrChapterNotFound, ref)
}

// Suggest returns the closest chapter slug to a likely typo, or an
// empty string when nothing is close enough.
func (g *Guide) Suggest(ref string) string {
	best := ""
	bestDistance := suggestMaxDistance + 1
	for _, chapter := range g.chapters {
		distance := levenshtein.ComputeDistance(strings.ToLower(ref), chapter.Slug)
		if distance < bestDistance {
			best = chapter.Slug
			bestDistance = distance
		}
	}
	return best
}

// parseChapterName splits a NN-slug.md filename into its parts.
func parseChapterName(name string) (int, string, error) {
	stem := strings.TrimSuffix(name, ".md")
	parts := strings.SplitN(stem, "-", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("chapter %q is not named NN-slug.md", name)
	}

	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("chapter %q is not named NN-slug.md", name)
	}

	return number, parts[1], nil
}

// chapterTitle extracts the first level-1 heading. The chapters are
// embedded, so a missing heading is a defect in the source tree, not
// a runtime condition.
func chapterTitle(source []byte, slug string) (string, error) {
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	title := ""
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || title != "" {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			title = headingText(heading, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		return "", fmt.Errorf("chapter %q has no level-1 heading", slug)
	}
	return title, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		} else if link, ok := child.(*ast.Link); ok {
			for linkChild := link.FirstChild(); linkChild != nil; linkChild = linkChild.NextSibling() {
				if textNode, ok := linkChild.(*ast.Text); ok {
					buf.Write(textNode.Segment.Value(source))
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
