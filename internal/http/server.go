// Package httpapi exposes the management HTTP surface: bot listing, login
// session control and plugin configuration.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nextlevelbuilder/pbgate/internal/bot"
	"github.com/nextlevelbuilder/pbgate/internal/config"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
	"github.com/nextlevelbuilder/pbgate/internal/plugin"
	"github.com/nextlevelbuilder/pbgate/internal/session"
)

// Server is the admin HTTP server.
type Server struct {
	registry *bot.Registry
	sessions *session.Manager
	store    *plugin.Store
	cfg      config.AdminConfig

	httpServer *http.Server
	log        *slog.Logger
}

// NewServer wires the admin surface over the given components.
func NewServer(cfg config.AdminConfig, registry *bot.Registry, sessions *session.Manager, store *plugin.Store) *Server {
	s := &Server{
		registry: registry,
		sessions: sessions,
		store:    store,
		cfg:      cfg,
		log:      slog.With("component", "httpapi"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /bot/list", s.handleBotList)
	mux.HandleFunc("POST /bot/delete", s.handleBotDelete)

	mux.HandleFunc("POST /login/qrcode/create", s.handleQRCreate)
	mux.HandleFunc("POST /login/qrcode/query", s.handleQRQuery)
	mux.HandleFunc("POST /login/qrcode/list", s.handleQRList)
	mux.HandleFunc("POST /login/qrcode/delete", s.handleQRDelete)

	mux.HandleFunc("POST /login/password/create", s.handlePasswordCreate)
	mux.HandleFunc("POST /login/password/request_sms", s.handleRequestSMS)
	mux.HandleFunc("POST /login/password/submit_sms", s.handleSubmitSMS)
	mux.HandleFunc("POST /login/password/submit_ticket", s.handleSubmitTicket)
	mux.HandleFunc("POST /login/password/list", s.handlePasswordList)
	mux.HandleFunc("POST /login/password/delete", s.handlePasswordDelete)

	mux.HandleFunc("POST /plugin/save", s.handlePluginSave)
	mux.HandleFunc("POST /plugin/list", s.handlePluginList)
	mux.HandleFunc("POST /plugin/delete", s.handlePluginDelete)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      rateLimit(cfg.RateLimitRPM, mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe blocks serving the admin API.
func (s *Server) ListenAndServe() error {
	s.log.Info("admin api listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// rateLimit applies a process-wide request budget to the admin surface.
// Zero or negative rpm disables limiting.
func rateLimit(rpm int, next http.Handler) http.Handler {
	if rpm <= 0 {
		return next
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// fail maps a gateway error onto its HTTP status.
func fail(w http.ResponseWriter, err error) {
	writeError(w, errs.HTTPStatus(err), err)
}

// decode parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
