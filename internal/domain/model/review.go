package model

import "time"

// Review is a rating left by a user for a resource. One review per
// user per resource; a repeat submission replaces the previous one.
type Review struct {
	ID         int64
	ResourceID string
	UserID     int64
	Rating     int
	Review     string
	CreatedAt  time.Time
}

// RatingStats summarizes ratings of a single resource.
type RatingStats struct {
	Average *int
	Count   int64
	Min     int
	Max     int
}
