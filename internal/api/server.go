package api

import (
	"database/sql"
	_ "expvar"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/footycoach/matchsim/internal/cache"
	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/echo"
	"github.com/footycoach/matchsim/internal/repository"
)

// Server is the matchsim HTTP API: fixture generation, match simulation,
// and ladder computation behind a single mux.
type Server struct {
	mux *http.ServeMux
}

// NewServer wires repositories into handlers and registers every route.
func NewServer(db *sql.DB, cacheClient *cache.Client, tuning core.Tuning) *Server {
	echo.Info("Initializing repositories...")

	matchResultRepo := repository.NewMatchResultRepository(db, cacheClient)
	ladderRepo := repository.NewLadderRepository(db, cacheClient)

	echo.Info("Registering routes...")

	return newServer(
		NewFixturesHandler(),
		NewLadderHandler(matchResultRepo, ladderRepo),
		NewMatchesHandler(matchResultRepo, tuning),
	)
}

// newServer wires every registrar into one mux plus the ambient health and
// docs endpoints.
func newServer(registrars ...Registrar) *Server {
	mux := http.NewServeMux()

	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	// Health check endpoint
	// @Summary Health check
	// @Description Check if the API server is running
	// @Tags health
	// @Accept json
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})

	mux.Handle("GET /debug/vars", http.DefaultServeMux)
	return &Server{mux: mux}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
