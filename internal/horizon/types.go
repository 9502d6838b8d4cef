package horizon

// HorizonAccount represents the JSON response from GET /accounts/{id}.
type HorizonAccount struct {
	ID       string           `json:"id"`
	Balances []HorizonBalance `json:"balances"`
}

// HorizonBalance represents a single balance entry in an account response.
type HorizonBalance struct {
	AssetType       string `json:"asset_type"`
	AssetCode       string `json:"asset_code"`
	AssetIssuer     string `json:"asset_issuer"`
	Balance         string `json:"balance"`
	Limit           string `json:"limit,omitempty"`
	LiquidityPoolID string `json:"liquidity_pool_id,omitempty"`
}

// Payment is a record from GET /accounts/{id}/payments. The endpoint mixes
// payment, path payment, create_account and account_merge operations, so
// fields not used by an operation type are left empty.
type Payment struct {
	ID              string `json:"id"`
	PagingToken     string `json:"paging_token"`
	Type            string `json:"type"`
	CreatedAt       string `json:"created_at"`
	TransactionHash string `json:"transaction_hash"`
	SourceAccount   string `json:"source_account"`
	From            string `json:"from,omitempty"`
	To              string `json:"to,omitempty"`
	AssetType       string `json:"asset_type,omitempty"`
	AssetCode       string `json:"asset_code,omitempty"`
	AssetIssuer     string `json:"asset_issuer,omitempty"`
	Amount          string `json:"amount,omitempty"`
	Funder          string `json:"funder,omitempty"`
	Account         string `json:"account,omitempty"`
	StartingBalance string `json:"starting_balance,omitempty"`
	Into            string `json:"into,omitempty"`
}

// AssetRecord is a record from GET /assets.
type AssetRecord struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
	PagingToken string `json:"paging_token"`
	Amount      string `json:"amount"`
	NumAccounts int    `json:"num_accounts"`
	Flags       struct {
		AuthRequired  bool `json:"auth_required"`
		AuthRevocable bool `json:"auth_revocable"`
		AuthImmutable bool `json:"auth_immutable"`
	} `json:"flags"`
}

type horizonTrade struct {
	ID            string `json:"id"`
	BaseAmount    string `json:"base_amount"`
	CounterAmount string `json:"counter_amount"`
	LedgerClose   string `json:"ledger_close_time"`
}
