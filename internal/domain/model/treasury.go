package model

// Treasury aggregates the platform-owned balance and its running totals.
type Treasury struct {
	Balance        int64
	TotalReceived  int64
	TotalWithdrawn int64
}
