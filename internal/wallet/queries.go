package wallet

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/reserve"
)

// BalanceQuote is the balance of one asset together with its transfer limit.
type BalanceQuote struct {
	Asset      domain.AssetInfo     `json:"asset"`
	Balance    decimal.Decimal      `json:"balance"`
	MaxAllowed domain.TransferLimit `json:"maxAllowed"`
}

// TransferOption is an asset the account can pick as the source of a payment.
type TransferOption struct {
	Asset   domain.AssetInfo `json:"asset"`
	Label   string           `json:"label"`
	Balance decimal.Decimal  `json:"balance"`
}

// TransferOptions lists the held assets a payment can be made in and the
// native transfer limit.
type TransferOptions struct {
	Options   []TransferOption     `json:"options"`
	NativeMax domain.TransferLimit `json:"nativeMax"`
}

// GetBalance returns the balance and transfer limit of the asset with the given
// code. "XLM" and "native" select the native asset.
func (s *Service) GetBalance(sess Session, code string) (BalanceQuote, error) {
	return s.GetBalanceOf(sess, domain.NewAssetInfo(code, ""))
}

// GetBalanceOf is GetBalance for a fully specified asset.
func (s *Service) GetBalanceOf(sess Session, asset domain.AssetInfo) (BalanceQuote, error) {
	if _, err := s.Balances(sess); err != nil {
		return BalanceQuote{}, err
	}
	raw := sess.Snapshot.Raw()

	entry, ok := reserve.FindBalance(raw, asset)
	if !ok {
		return BalanceQuote{}, assetNotHeld(asset)
	}
	limit, err := reserve.MaxTransferable(raw, entry.Asset, s.cfg.Reserve)
	if err != nil {
		return BalanceQuote{}, err
	}
	return BalanceQuote{
		Asset:      entry.Asset,
		Balance:    entry.Amount,
		MaxAllowed: limit,
	}, nil
}

// MaxTransferable returns how much of asset may leave the account.
func (s *Service) MaxTransferable(sess Session, asset domain.AssetInfo) (domain.TransferLimit, error) {
	if _, err := s.Balances(sess); err != nil {
		return domain.InsufficientBalance(), err
	}
	return reserve.MaxTransferable(sess.Snapshot.Raw(), asset, s.cfg.Reserve)
}

// TransferOptions returns the assets a payment form can offer.
func (s *Service) TransferOptions(sess Session) (TransferOptions, error) {
	balances, err := s.Balances(sess)
	if err != nil {
		return TransferOptions{}, err
	}

	options := lo.FilterMap(balances, func(b domain.EnrichedBalance, _ int) (TransferOption, bool) {
		if b.Asset.IsPoolShare() {
			return TransferOption{}, false
		}
		return TransferOption{Asset: b.Asset, Label: b.Asset.Label(), Balance: b.Amount}, true
	})

	nativeMax, err := reserve.MaxTransferable(sess.Snapshot.Raw(), domain.NativeAsset(), s.cfg.Reserve)
	if err != nil {
		return TransferOptions{}, err
	}
	return TransferOptions{Options: options, NativeMax: nativeMax}, nil
}

// NativeBalance returns the native balance of the cached snapshot.
func (s *Service) NativeBalance(sess Session) (decimal.Decimal, error) {
	if _, err := s.Balances(sess); err != nil {
		return decimal.Zero, err
	}
	entry, ok := reserve.NativeBalance(sess.Snapshot.Raw())
	if !ok {
		return decimal.Zero, assetNotHeld(domain.NativeAsset())
	}
	return entry.Amount, nil
}

func assetNotHeld(asset domain.AssetInfo) error {
	return fmt.Errorf("%w: %s", domain.ErrAssetNotHeld, asset.Canonical())
}
