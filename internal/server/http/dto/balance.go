package dto

// BalanceResponse represents spendable funds of a user.
type BalanceResponse struct {
	Current int64 `json:"current"`
}

// AmountRequest carries a single amount for deposits and withdrawals.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}
