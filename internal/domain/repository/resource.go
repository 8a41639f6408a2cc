package repository

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// ResourceRepository describes persistence for the resource registry.
type ResourceRepository interface {
	Create(ctx context.Context, res model.Resource) (*model.Resource, error)
	Update(ctx context.Context, res model.Resource) error
	Remove(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	Get(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context) ([]model.Resource, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}
