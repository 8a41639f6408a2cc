package dto

import "time"

// CreateOrderRequest describes the payload for funding a new order.
type CreateOrderRequest struct {
	ResourceID       string `json:"resource_id"`
	ServiceType      string `json:"service_type"`
	DurationUnits    int64  `json:"duration_units"`
	UnitPrice        int64  `json:"unit_price"`
	DeploymentTarget string `json:"deployment_target"`
	ServiceParams    string `json:"service_params"`
}

// OrderResponse describes an order as returned to clients.
type OrderResponse struct {
	ID                string    `json:"id"`
	ResourceID        string    `json:"resource_id"`
	ServiceType       string    `json:"service_type,omitempty"`
	DurationUnits     int64     `json:"duration_units"`
	UnitPrice         int64     `json:"unit_price"`
	TotalAmount       int64     `json:"total_amount"`
	EscrowedAmount    int64     `json:"escrowed_amount"`
	Status            string    `json:"status"`
	ExternalReference *string   `json:"external_reference,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// StatusUpdateRequest describes an operator-issued status override.
type StatusUpdateRequest struct {
	Status    string  `json:"status"`
	Reference *string `json:"reference,omitempty"`
}
