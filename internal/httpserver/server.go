package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/diet-hub/internal/auth"
	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/fdg312/diet-hub/internal/diets"
	"github.com/fdg312/diet-hub/internal/foods"
	"github.com/fdg312/diet-hub/internal/storage"
	"github.com/go-chi/chi/v5/middleware"
)

// requestTimeout ограничивает контекст запроса, в том числе решение LP
const requestTimeout = 30 * time.Second

// Deps — зависимости сервера, собранные в cmd/api
type Deps struct {
	Catalog *catalog.Catalog
	Solver  *diet.Solver
	// Storage закрывается в Close; может быть nil
	Storage storage.CatalogStorage
}

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	deps           Deps
	authMiddleware *auth.Middleware
	httpServer     *http.Server
}

// New создаёт новый HTTP сервер. Без каталога используется встроенный,
// без решателя создаётся решатель с движком по умолчанию.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Solver == nil {
		deps.Solver = diet.NewSolver(deps.Catalog)
	}

	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		deps:   deps,
	}

	s.routes()
	return s
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Catalog API
	foodsHandler := foods.NewHandler(foods.NewService(s.deps.Catalog))

	// GET /v1/foods - catalog in catalog order
	s.mux.HandleFunc("GET /v1/foods", foodsHandler.HandleList)

	// GET /v1/foods/{name} - one catalog item
	s.mux.HandleFunc("GET /v1/foods/{name}", foodsHandler.HandleGet)

	// Diet API
	dietsHandler := diets.NewHandler(diets.NewService(s.deps.Solver, s.config.Diet.MaxBound))

	// GET /v1/diet/defaults - default requirement and bounds
	s.mux.HandleFunc("GET /v1/diet/defaults", dietsHandler.HandleDefaults)

	// POST /v1/diet/solve - least-cost diet
	s.mux.HandleFunc("POST /v1/diet/solve", dietsHandler.HandleSolve)

	// POST /v1/diet/report?format=text|csv|pdf|json - rendered report of a solve
	s.mux.HandleFunc("POST /v1/diet/report", dietsHandler.HandleReport)
}

// Handler собирает цепочку middleware (снаружи внутрь):
// RequestID → Recoverer → access log → CORS → Rate Limit → Auth → Timeout → Router
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = middleware.Timeout(requestTimeout)(handler)
	handler = s.authMiddleware.Wrap(handler)
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	handler = RequestLogMiddleware(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.RequestID(handler)
	return handler
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start запускает HTTP сервер и блокируется до Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("INFO http: listening on http://localhost%s", addr)
	log.Printf("INFO http: health check http://localhost%s/healthz", addr)
	log.Printf("INFO http: solve endpoint http://localhost%s/v1/diet/solve", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает приём запросов и ждёт завершения активных
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.deps.Storage != nil {
		return s.deps.Storage.Close()
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
