package api

import (
	"net/http"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/horizon"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/pagination"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

type pageResponse[T any] struct {
	Records []T                `json:"records"`
	Cursors pagination.Cursors `json:"cursors"`
}

// GetPayments handles GET /api/v1/payments?cursor=&order=asc|desc|asc_order&page=next|prev.
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}
	q := r.URL.Query()
	ctx := r.Context()

	var records []horizon.Payment
	sess, err := h.sessions.Update(ctx, id, func(s wallet.Session) (wallet.Session, error) {
		cursor := wallet.CursorFor(s, pagination.StreamPayments, q.Get("cursor"), q.Get("page"))
		var err error
		s, records, err = h.wallet.GetTransactions(ctx, s, cursor, q.Get("order"))
		return s, err
	})
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse[horizon.Payment]{Records: records, Cursors: sess.Cursors.Payments})
}

// GetAssets handles GET /api/v1/assets?cursor=&asset_code=&asset_issuer=&order=&page=.
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}
	q := r.URL.Query()
	ctx := r.Context()

	var records []horizon.AssetRecord
	sess, err := h.sessions.Update(ctx, id, func(s wallet.Session) (wallet.Session, error) {
		query := horizon.AssetsQuery{
			Cursor: wallet.CursorFor(s, pagination.StreamAssets, q.Get("cursor"), q.Get("page")),
			Code:   q.Get("asset_code"),
			Issuer: q.Get("asset_issuer"),
			Order:  q.Get("order"),
		}
		var err error
		s, records, err = h.wallet.GetAssets(ctx, s, query)
		return s, err
	})
	if err != nil {
		writeWalletError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse[horizon.AssetRecord]{Records: records, Cursors: sess.Cursors.Assets})
}
