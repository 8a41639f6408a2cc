package model

import "time"

// Resource is a leasable entry in the marketplace registry.
type Resource struct {
	ID          string
	Name        string
	Description string
	Active      bool
	Uptime      int
	Reliability int
	Cost        int64
	CreatedAt   time.Time
}
