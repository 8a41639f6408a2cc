package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Resources() ResourceRepository
	Balances() BalanceRepository
	Treasury() TreasuryRepository
	Reviews() ReviewRepository
	Settings() SettingsRepository
}
