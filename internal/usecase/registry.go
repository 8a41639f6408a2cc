package usecase

import (
	"context"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// RegistryUseCase manages the catalog of leasable resources.
type RegistryUseCase struct {
	resources repository.ResourceRepository
	settings  repository.SettingsRepository
}

// NewRegistryUseCase constructs RegistryUseCase.
func NewRegistryUseCase(resources repository.ResourceRepository, settings repository.SettingsRepository) *RegistryUseCase {
	return &RegistryUseCase{resources: resources, settings: settings}
}

func (u *RegistryUseCase) requireOperator(ctx context.Context, callerID int64) error {
	operatorID, err := u.settings.OperatorID(ctx)
	if err != nil {
		return err
	}
	if callerID != operatorID {
		return domainErrors.ErrNotAuthorized
	}
	return nil
}

func validateResource(res model.Resource) error {
	if res.Name == "" || res.Description == "" {
		return domainErrors.ErrInvalidInput
	}
	if res.Uptime < 0 || res.Uptime > 100 {
		return domainErrors.ErrInvalidInput
	}
	if res.Reliability < 0 || res.Reliability > 100 {
		return domainErrors.ErrInvalidInput
	}
	if res.Cost < 0 {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

// Add registers a new resource. Operator only.
func (u *RegistryUseCase) Add(ctx context.Context, callerID int64, res model.Resource) (*model.Resource, error) {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return nil, err
	}
	if err := validateResource(res); err != nil {
		return nil, err
	}
	res.Active = true
	return u.resources.Create(ctx, res)
}

// Update overwrites resource details. Operator only.
func (u *RegistryUseCase) Update(ctx context.Context, callerID int64, res model.Resource) error {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return err
	}
	if err := validateResource(res); err != nil {
		return err
	}
	return u.resources.Update(ctx, res)
}

// Remove deletes a resource from the catalog. Operator only. Orders
// referencing the resource are retained for audit.
func (u *RegistryUseCase) Remove(ctx context.Context, callerID int64, id string) error {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return err
	}
	return u.resources.Remove(ctx, id)
}

// SetActive toggles resource availability. Operator only.
func (u *RegistryUseCase) SetActive(ctx context.Context, callerID int64, id string, active bool) error {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return err
	}
	return u.resources.SetActive(ctx, id, active)
}

// Get returns resource details.
func (u *RegistryUseCase) Get(ctx context.Context, id string) (*model.Resource, error) {
	return u.resources.Get(ctx, id)
}

// List returns the full catalog.
func (u *RegistryUseCase) List(ctx context.Context) ([]model.Resource, error) {
	return u.resources.List(ctx)
}

// Count returns the number of registered resources.
func (u *RegistryUseCase) Count(ctx context.Context) (int64, error) {
	return u.resources.Count(ctx)
}

// Exists reports whether an active resource with the given ID is registered.
func (u *RegistryUseCase) Exists(ctx context.Context, id string) (bool, error) {
	return u.resources.Exists(ctx, id)
}
