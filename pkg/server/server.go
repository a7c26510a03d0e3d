package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/guide"
	"github.com/centroidhq/centroid/pkg/server/middleware"
	"github.com/centroidhq/centroid/pkg/server/store"
	gormstore "github.com/centroidhq/centroid/pkg/server/store/gorm"
)

type Server struct {
	Config   *config.Config
	Log      zerolog.Logger
	Router   *mux.Router
	DB       *gorm.DB
	Datasets *dataset.Registry
	Guide    *guide.Guide
	Runs     store.RunsStore
	Health   store.HealthStore

	srv *http.Server
	ln  net.Listener
}

func NewServer(
	cfg *config.Config,
	log zerolog.Logger,
	db *gorm.DB,
	datasets *dataset.Registry,
	g *guide.Guide,
) *Server {
	router := mux.NewRouter().UseEncodedPath()

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
	)

	// The API is meant to be called from notebooks and other pages,
	// not just the embedded dashboard.
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	srv := &http.Server{
		Handler: chain(handlers.CompressHandler(cors(router))),
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:   cfg,
		Log:      log,
		Router:   router,
		DB:       db,
		Datasets: datasets,
		Guide:    g,
		Runs:     gormstore.NewRunsStore(db),
		Health:   gormstore.NewHealthStore(db),
		srv:      srv,
	}
}

// Handler returns the full handler stack the listener serves,
// middleware and compression included.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Listen binds the server's address and returns the bound address.
// With a configured port of 0 this reports the ephemeral port the
// kernel picked, which tests rely on.
func (s *Server) Listen() (string, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return "", err
	}
	s.ln = ln
	return ln.Addr().String(), nil
}

// Start serves HTTP until Shutdown is called, binding the address
// first unless Listen already did.
func (s *Server) Start() error {
	if s.ln == nil {
		if _, err := s.Listen(); err != nil {
			return err
		}
	}
	return s.srv.Serve(s.ln)
}

// Shutdown gracefully stops the server, waiting for in-flight
// requests to finish until the context is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
