package repository

import "context"

// Setting keys for collaborator endpoints recorded by the operator.
// All three must be present before orders may be created.
const (
	SettingRegistryAddress = "registry_address"
	SettingLedgerAddress   = "ledger_address"
	SettingTreasuryAddress = "treasury_address"
)

// SettingsRepository holds engine-level configuration: the operator
// identity set exactly once at initialization, and collaborator settings.
type SettingsRepository interface {
	// OperatorID returns the configured operator, or ErrNotInitialized.
	OperatorID(ctx context.Context) (int64, error)

	// SetOperatorID records the operator once; ErrAlreadyInitialized on repeat.
	SetOperatorID(ctx context.Context, id int64) error

	// Get returns a setting value, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error
}
