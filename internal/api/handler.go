package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stellar/go/strkey"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/session"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

// SessionCookie carries the session id.
const SessionCookie = "wallet_session"

// Handler provides HTTP endpoints for the wallet API.
type Handler struct {
	wallet   *wallet.Service
	sessions *session.Manager
	ttl      time.Duration
}

// NewHandler creates a new API handler. ttl sets the session cookie lifetime.
func NewHandler(w *wallet.Service, sessions *session.Manager, ttl time.Duration) *Handler {
	return &Handler{wallet: w, sessions: sessions, ttl: ttl}
}

type loginRequest struct {
	AccountID string `json:"account_id"`
}

type stateResponse struct {
	AccountID string               `json:"account_id,omitempty"`
	State     wallet.SnapshotState `json:"state"`
}

type balancesResponse struct {
	State     wallet.SnapshotState     `json:"state"`
	Balances  []domain.EnrichedBalance `json:"balances"`
	FetchedAt time.Time                `json:"fetched_at,omitzero"`
}

// Login handles POST /api/v1/session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strkey.IsValidEd25519PublicKey(req.AccountID) {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	sess := h.wallet.Enter(wallet.NewSession(req.AccountID))
	id, err := h.sessions.Create(r.Context(), sess)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("session opened", "account", req.AccountID)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, stateResponse{AccountID: sess.AccountID, State: sess.Snapshot.State})
}

// Logout handles DELETE /api/v1/session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessionID(r); ok {
		if err := h.sessions.Delete(r.Context(), id); err != nil {
			slog.Error("failed to delete session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// RefreshBalances handles POST /api/v1/balances/refresh.
func (h *Handler) RefreshBalances(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	ctx := r.Context()
	sess, err := h.sessions.Update(ctx, id, func(s wallet.Session) (wallet.Session, error) {
		s = h.wallet.MarkFetching(s)
		if err := h.sessions.Save(ctx, id, s); err != nil {
			return s, err
		}
		s, _, err := h.wallet.RefreshBalances(ctx, s)
		return s, err
	})
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{
		State:     sess.Snapshot.State,
		Balances:  sess.Snapshot.Balances,
		FetchedAt: sess.Snapshot.FetchedAt,
	})
}

// GetBalances handles GET /api/v1/balances.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	balances, err := h.wallet.Balances(sess)
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{
		State:     sess.Snapshot.State,
		Balances:  balances,
		FetchedAt: sess.Snapshot.FetchedAt,
	})
}

// GetBalance handles GET /api/v1/balances/{code}. An optional issuer query
// parameter narrows the match.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	asset := domain.NewAssetInfo(r.PathValue("code"), r.URL.Query().Get("issuer"))
	quote, err := h.wallet.GetBalanceOf(sess, asset)
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// GetTransferLimit handles GET /api/v1/transfer-limit?code=&issuer=.
func (h *Handler) GetTransferLimit(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	asset := domain.NewAssetInfo(code, r.URL.Query().Get("issuer"))
	limit, err := h.wallet.MaxTransferable(sess, asset)
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"asset": asset, "max_allowed": limit})
}

// GetTransferOptions handles GET /api/v1/transfer-options.
func (h *Handler) GetTransferOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	opts, err := h.wallet.TransferOptions(sess)
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// GetNativeBalance handles GET /api/v1/native-balance.
func (h *Handler) GetNativeBalance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	balance, err := h.wallet.NativeBalance(sess)
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"asset": domain.NativeAsset(), "balance": balance})
}

func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (wallet.Session, bool) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return wallet.Session{}, false
	}
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeWalletError(w, err)
		return wallet.Session{}, false
	}
	return sess, true
}

// writeWalletError maps wallet, session and remote errors to responses.
func writeWalletError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusUnauthorized, "session expired")
	case errors.Is(err, wallet.ErrAccountNotFound):
		writeJSON(w, http.StatusOK, stateResponse{State: "inactive"})
	case errors.Is(err, wallet.ErrBalancesFetching):
		writeJSON(w, http.StatusConflict, stateResponse{State: wallet.StateFetching})
	case errors.Is(err, domain.ErrAssetNotHeld):
		writeError(w, http.StatusUnprocessableEntity, "asset not held by account")
	case remote.IsUnreachable(err), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("remote service unreachable", "error", err)
		writeError(w, http.StatusBadGateway, "service unreachable")
	case errors.Is(err, remote.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, wallet.ErrBalancesUnavailable):
		writeJSON(w, http.StatusConflict, stateResponse{State: wallet.StateEmpty})
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
