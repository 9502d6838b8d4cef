package domain

import "github.com/shopspring/decimal"

// ReserveParams are the ledger's minimum-balance rules used to compute transfer limits.
type ReserveParams struct {
	MinBaseReserve decimal.Decimal `json:"minBaseReserve"`
	PerTrustline   decimal.Decimal `json:"perTrustline"`
	TransactionFee decimal.Decimal `json:"transactionFee"`
}

// DefaultReserveParams returns the reserve rules the wallet has always applied:
// 1 XLM base reserve, 0.5 XLM per trustline and a 0.00001 XLM fee.
func DefaultReserveParams() ReserveParams {
	return ReserveParams{
		MinBaseReserve: decimal.NewFromInt(1),
		PerTrustline:   decimal.RequireFromString("0.5"),
		TransactionFee: decimal.RequireFromString("0.00001"),
	}
}
