package model

// Balance holds the spendable funds of a user in the smallest currency unit.
type Balance struct {
	UserID  int64
	Current int64
}
