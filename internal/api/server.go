package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	// MetricsAPIKey protects /metrics with a bearer token when set.
	MetricsAPIKey string
}

// NewServer creates an HTTP server with all routes configured. metrics may be nil.
func NewServer(cfg ServerConfig, handler *Handler, metrics http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/session", handler.Login)
	mux.HandleFunc("DELETE /api/v1/session", handler.Logout)
	mux.HandleFunc("POST /api/v1/balances/refresh", handler.RefreshBalances)
	mux.HandleFunc("GET /api/v1/balances", handler.GetBalances)
	mux.HandleFunc("GET /api/v1/balances/{code}", handler.GetBalance)
	mux.HandleFunc("GET /api/v1/transfer-limit", handler.GetTransferLimit)
	mux.HandleFunc("GET /api/v1/transfer-options", handler.GetTransferOptions)
	mux.HandleFunc("GET /api/v1/native-balance", handler.GetNativeBalance)
	mux.HandleFunc("GET /api/v1/payments", handler.GetPayments)
	mux.HandleFunc("GET /api/v1/assets", handler.GetAssets)

	var root http.Handler = withTimeout(cfg.RequestTimeout, mux)

	if metrics != nil {
		outer := http.NewServeMux()
		if cfg.MetricsAPIKey != "" {
			outer.Handle("GET /metrics", requireAuth(cfg.MetricsAPIKey, metrics))
		} else {
			outer.Handle("GET /metrics", metrics)
		}
		outer.Handle("/", root)
		root = outer
	}

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withTimeout bounds every request, remote calls included, by d.
func withTimeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
