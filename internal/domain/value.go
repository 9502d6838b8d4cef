package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// UndeterminedLabel is the wire form of a USD value that could not be priced.
	UndeterminedLabel = "undetermined"
	// InsufficientBalanceLabel is the wire form of a transfer limit with nothing available.
	InsufficientBalanceLabel = "insufficient_balance"
)

// USDValue is either a determined USD amount or Undetermined when no trade exists to price the asset.
// The zero value is Undetermined.
type USDValue struct {
	amount     decimal.Decimal
	determined bool
}

// USD returns a determined value rounded to cents.
func USD(amount decimal.Decimal) USDValue {
	return USDValue{amount: RoundUSD(amount), determined: true}
}

// Undetermined returns the value for assets without a usable price.
func Undetermined() USDValue { return USDValue{} }

// Amount returns the USD amount and whether it is determined.
func (v USDValue) Amount() (decimal.Decimal, bool) {
	return v.amount, v.determined
}

// IsDetermined reports whether the value carries an amount.
func (v USDValue) IsDetermined() bool { return v.determined }

func (v USDValue) String() string {
	if !v.determined {
		return UndeterminedLabel
	}
	return v.amount.StringFixed(usdPlaces)
}

func (v USDValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *USDValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding usd value: %w", err)
	}
	if s == UndeterminedLabel {
		*v = Undetermined()
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parsing usd value %q: %w", s, err)
	}
	*v = USD(d)
	return nil
}

// TransferLimit is the largest amount that may leave the account, or InsufficientBalance.
// The zero value is InsufficientBalance.
type TransferLimit struct {
	amount    decimal.Decimal
	available bool
}

// Limit returns a limit carrying amount as is. Callers round before constructing.
func Limit(amount decimal.Decimal) TransferLimit {
	return TransferLimit{amount: amount, available: true}
}

// InsufficientBalance returns the limit for accounts that cannot send anything.
func InsufficientBalance() TransferLimit { return TransferLimit{} }

// Amount returns the limit and whether anything is transferable.
func (l TransferLimit) Amount() (decimal.Decimal, bool) {
	return l.amount, l.available
}

// IsInsufficient reports whether nothing may be transferred.
func (l TransferLimit) IsInsufficient() bool { return !l.available }

func (l TransferLimit) String() string {
	if !l.available {
		return InsufficientBalanceLabel
	}
	return l.amount.String()
}

func (l TransferLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
