package endpoints

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/centroidhq/centroid/pkg/server"
)

//go:embed static
var staticFiles embed.FS

// RegisterUIEndpoints registers the dashboard page and its assets.
// Everything the browser loads, bar the plotly.js CDN script, is
// embedded in the binary.
func RegisterUIEndpoints(s *server.Server) {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// GET / - the dashboard
	s.Router.HandleFunc("/", handleDashboard(staticFS)).Methods("GET")

	// GET /datasets/{name} - the dashboard with that dataset selected
	s.Router.HandleFunc("/datasets/{name}", handleDatasetPage(s, staticFS)).Methods("GET")

	// Serve /static/* from the embedded assets
	s.Router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	)

	// Serve favicon.ico (return 404 if not present)
	s.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}

func handleDashboard(staticFS fs.FS) http.HandlerFunc {
	// index.html is embedded, so the read cannot fail.
	page, _ := fs.ReadFile(staticFS, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// handleDatasetPage serves the dashboard when the named dataset
// exists; the client reads the dataset name back out of the path. An
// unknown name gets a 404 page, with a link when the name looks like
// a typo.
func handleDatasetPage(s *server.Server, staticFS fs.FS) http.HandlerFunc {
	page, _ := fs.ReadFile(staticFS, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := s.Datasets.Get(name); err != nil {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "<!doctype html>\n<title>Dataset not found</title>\n<h1>No dataset called %s</h1>\n",
				html.EscapeString(name))
			if suggestion := s.Datasets.Suggest(name); suggestion != "" {
				fmt.Fprintf(w, `<p>Did you mean <a href="/datasets/%s">%s</a>?</p>`+"\n",
					url.PathEscape(suggestion), html.EscapeString(suggestion))
			}
			fmt.Fprintf(w, `<p><a href="/">Back to the dashboard</a></p>`+"\n")
			return
		}
		_, _ = w.Write(page)
	}
}
