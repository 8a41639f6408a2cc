package dto

import "time"

// ResourceRequest describes a resource submitted by the operator.
type ResourceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Uptime      int    `json:"uptime"`
	Reliability int    `json:"reliability"`
	Cost        int64  `json:"cost"`
}

// ResourceResponse describes a registry entry as returned to clients.
type ResourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Uptime      int       `json:"uptime"`
	Reliability int       `json:"reliability"`
	Cost        int64     `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActiveRequest toggles resource availability.
type ActiveRequest struct {
	Active bool `json:"active"`
}

// ReviewRequest describes a rating submitted by a buyer.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// ReviewResponse describes a stored review.
type ReviewResponse struct {
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingResponse summarizes ratings of a resource.
type RatingResponse struct {
	Average *int  `json:"average"`
	Count   int64 `json:"count"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
}
