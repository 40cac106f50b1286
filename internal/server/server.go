package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/klingberg/bokfor/internal/catalog"
	"github.com/klingberg/bokfor/internal/store"
)

type Server struct {
	store   *store.Store
	catalog *catalog.Catalog
	router  chi.Router
	addr    string
}

func New(st *store.Store, cat *catalog.Catalog, addr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	s := &Server{store: st, catalog: cat, router: r, addr: addr}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.ownerRequired)

		// Transactions
		r.Post("/transactions", s.postTransaction)
		r.Post("/transactions/preview", s.previewTransaction)
		r.Get("/transactions", s.listTransactions)
		r.Get("/transactions/{id}", s.getTransaction)

		// Presets
		r.Get("/presets", s.listPresets)
		r.Get("/presets/{id}", s.getPreset)

		// Chart of accounts
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{number}", s.getAccount)
		r.Get("/chart", s.getChart)

		// Contacts (employees, suppliers, customers)
		r.Post("/contacts", s.createContact)
		r.Get("/contacts", s.listContacts)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	slog.Info("bokfor server listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	slog.Info("bokfor server listening", "addr", ln.Addr().String())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

type ctxKey int

const ownerKey ctxKey = 0

// ownerRequired reads the authenticated owner id supplied by the
// identity layer in front of us. The id is trusted as given; every
// lookup and commit downstream is scoped to it.
func (s *Server) ownerRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get("X-Owner-Id")
		if owner == "" {
			writeError(w, http.StatusUnauthorized, "missing X-Owner-Id header")
			return
		}
		if err := s.store.EnsureChart(r.Context(), owner); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
	})
}

func ownerFrom(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey).(string)
	return owner
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
