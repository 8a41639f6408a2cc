package dto

// SettingsRequest configures collaborator endpoints. Empty fields are
// left untouched.
type SettingsRequest struct {
	RegistryAddress string `json:"registry_address,omitempty"`
	LedgerAddress   string `json:"ledger_address,omitempty"`
	TreasuryAddress string `json:"treasury_address,omitempty"`
}

// StatsResponse reports engine-wide counters.
type StatsResponse struct {
	OrderCount    int64 `json:"order_count"`
	TotalEscrowed int64 `json:"total_escrowed"`
	ResourceCount int64 `json:"resource_count"`
}

// TreasuryResponse describes the platform ledger.
type TreasuryResponse struct {
	Balance        int64 `json:"balance"`
	TotalReceived  int64 `json:"total_received"`
	TotalWithdrawn int64 `json:"total_withdrawn"`
}
