package usecase

import (
	"context"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// ReviewUseCase aggregates ratings and reviews per resource.
type ReviewUseCase struct {
	reviews   repository.ReviewRepository
	resources repository.ResourceRepository
	settings  repository.SettingsRepository
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(reviews repository.ReviewRepository, resources repository.ResourceRepository, settings repository.SettingsRepository) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, resources: resources, settings: settings}
}

// RateAndReview records the caller's rating for a resource. A second
// submission by the same user replaces the first.
func (u *ReviewUseCase) RateAndReview(ctx context.Context, userID int64, resourceID string, rating int, review string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domainErrors.ErrInvalidInput
	}

	exists, err := u.resources.Exists(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainErrors.ErrInvalidResource
	}

	return u.reviews.Upsert(ctx, model.Review{
		ResourceID: resourceID,
		UserID:     userID,
		Rating:     rating,
		Review:     review,
	})
}

// ListByResource returns all reviews for the resource.
func (u *ReviewUseCase) ListByResource(ctx context.Context, resourceID string) ([]model.Review, error) {
	return u.reviews.ListByResource(ctx, resourceID)
}

// Stats returns rating aggregates for the resource.
func (u *ReviewUseCase) Stats(ctx context.Context, resourceID string) (*model.RatingStats, error) {
	return u.reviews.Stats(ctx, resourceID)
}

// Purge removes all reviews of a resource. Operator only.
func (u *ReviewUseCase) Purge(ctx context.Context, callerID int64, resourceID string) error {
	operatorID, err := u.settings.OperatorID(ctx)
	if err != nil {
		return err
	}
	if callerID != operatorID {
		return domainErrors.ErrNotAuthorized
	}
	return u.reviews.RemoveByResource(ctx, resourceID)
}
