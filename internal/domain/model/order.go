package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusDeployed  OrderStatus = "DEPLOYED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// KnownStatus reports whether s is one of the defined lifecycle statuses.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusActive, OrderStatusDeployed,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusFailed
}

// Order describes a paid service lease with funds held in escrow
// until completion or refund.
type Order struct {
	ID                string
	BuyerID           int64
	ResourceID        string
	ServiceType       string
	DurationUnits     int64
	UnitPrice         int64
	TotalAmount       int64
	EscrowedAmount    int64
	Status            OrderStatus
	CreatedAt         time.Time
	ExternalReference *string
	DeploymentTarget  string
	ServiceParams     string
}

// OrderSpec carries the caller-supplied fields of a new order.
type OrderSpec struct {
	ResourceID       string
	ServiceType      string
	DurationUnits    int64
	UnitPrice        int64
	DeploymentTarget string
	ServiceParams    string
}
