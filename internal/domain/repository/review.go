package repository

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// ReviewRepository stores resource reviews and rating aggregates.
type ReviewRepository interface {
	Upsert(ctx context.Context, review model.Review) (*model.Review, error)
	ListByResource(ctx context.Context, resourceID string) ([]model.Review, error)
	Stats(ctx context.Context, resourceID string) (*model.RatingStats, error)
	RemoveByResource(ctx context.Context, resourceID string) error
}
