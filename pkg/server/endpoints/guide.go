package endpoints

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/centroidhq/centroid/pkg/guide"
	"github.com/centroidhq/centroid/pkg/logging"
	"github.com/centroidhq/centroid/pkg/server"
)

// RegisterGuideEndpoints registers the workshop guide pages
func RegisterGuideEndpoints(s *server.Server) {
	g := s.Guide

	// GET /guide - chapter index
	s.Router.HandleFunc("/guide", handleGuideIndex(g)).Methods("GET")

	// GET /guide/{ref} - one chapter, by slug or number
	s.Router.HandleFunc("/guide/{ref}", handleGuideChapter(g)).Methods("GET")
}

func handleGuideIndex(g *guide.Guide) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body strings.Builder
		body.WriteString("<h1>Workshop guide</h1>\n")
		body.WriteString("<ol class=\"chapters\">\n")
		for _, chapter := range g.Chapters() {
			fmt.Fprintf(&body, "  <li><a href=\"/guide/%s\">%s</a></li>\n",
				chapter.Slug, html.EscapeString(chapter.Title))
		}
		body.WriteString("</ol>\n")

		writeGuidePage(w, "Guide", body.String())
	}
}

func handleGuideChapter(g *guide.Guide) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := mux.Vars(r)["ref"]
		chapter, err := g.Find(ref)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		rendered, err := chapter.HTML()
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Str("chapter", chapter.Slug).Msg("failed to render chapter")
			http.Error(w, "failed to render chapter", http.StatusInternalServerError)
			return
		}

		var body strings.Builder
		body.WriteString("<article class=\"chapter\">\n")
		body.WriteString(rendered)
		body.WriteString("</article>\n")
		body.WriteString(chapterNav(g, chapter))

		writeGuidePage(w, chapter.Title, body.String())
	}
}

// chapterNav renders the previous/index/next footer links.
func chapterNav(g *guide.Guide, current *guide.Chapter) string {
	chapters := g.Chapters()

	var nav strings.Builder
	nav.WriteString("<nav class=\"chapter-nav\">\n")
	for i := range chapters {
		if chapters[i].Slug != current.Slug {
			continue
		}
		if i > 0 {
			fmt.Fprintf(&nav, "  <a href=\"/guide/%s\">&larr; %s</a>\n",
				chapters[i-1].Slug, html.EscapeString(chapters[i-1].Title))
		}
		nav.WriteString("  <a href=\"/guide\">Contents</a>\n")
		if i+1 < len(chapters) {
			fmt.Fprintf(&nav, "  <a href=\"/guide/%s\">%s &rarr;</a>\n",
				chapters[i+1].Slug, html.EscapeString(chapters[i+1].Title))
		}
	}
	nav.WriteString("</nav>\n")
	return nav.String()
}

func writeGuidePage(w http.ResponseWriter, title, body string) {
	page := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">

    <link rel="stylesheet" href="/static/style.css">
    <title>` + html.EscapeString(title) + ` - Centroid</title>
  </head>
  <body class="guide">

    <header>
      <a class="brand" href="/">Centroid</a>
      <nav>
        <a href="/guide">Guide</a>
        <a href="https://github.com/centroidhq/centroid" target="_blank">GitHub</a>
      </nav>
    </header>

    <main>
` + body + `    </main>

  </body>
</html>
`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
