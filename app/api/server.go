package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/lookup"
)

type ctxKey string

const ctxUserIDKey ctxKey = "userID"

type Server struct {
	storage db.Storage
	router  chi.Router
}

// Run serves API until ctx is done
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(storage db.Storage, service lookup.Service, tgToken string, jwtSecret string) *Server {
	s := &Server{storage: storage}
	lookups := lookupService{service: service}
	history := historyService{storage: storage}
	auth := newAuthService(tgToken, jwtSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Route("/auth", func(r chi.Router) {
			r.Get("/telegram", auth.TelegramRedirectHandler)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.UserCtx)
			r.Get("/lookup/{word}", lookups.Lookup)
			r.Get("/history", history.GetHistory)
			r.Delete("/history", history.ClearHistory)
		})
	})

	s.router = r
	return s
}
