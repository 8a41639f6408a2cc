package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	testhelpers "github.com/nodefoundry/depinmarket/internal/test"
)

func newRegistryFixture(t *testing.T) (*RegistryUseCase, *testhelpers.ResourceRepositoryStub) {
	t.Helper()
	resources := testhelpers.NewResourceRepositoryStub()
	settings := testhelpers.NewSettingsRepositoryStub()
	if err := settings.SetOperatorID(context.Background(), operatorID); err != nil {
		t.Fatalf("set operator: %v", err)
	}
	return NewRegistryUseCase(resources, settings), resources
}

func TestRegistryAddValidation(t *testing.T) {
	uc, _ := newRegistryFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		res  model.Resource
	}{
		{"empty name", model.Resource{Description: "d", Uptime: 1, Reliability: 1}},
		{"empty description", model.Resource{Name: "n", Uptime: 1, Reliability: 1}},
		{"uptime above range", model.Resource{Name: "n", Description: "d", Uptime: 101}},
		{"negative reliability", model.Resource{Name: "n", Description: "d", Reliability: -1}},
		{"negative cost", model.Resource{Name: "n", Description: "d", Cost: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Add(ctx, operatorID, tc.res); !errors.Is(err, domainErrors.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestRegistryAddRequiresOperator(t *testing.T) {
	uc, _ := newRegistryFixture(t)

	_, err := uc.Add(context.Background(), buyerID, model.Resource{Name: "n", Description: "d"})
	if !errors.Is(err, domainErrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	uc, _ := newRegistryFixture(t)
	ctx := context.Background()

	res, err := uc.Add(ctx, operatorID, model.Resource{Name: "edge-node", Description: "eu-west", Uptime: 99, Reliability: 95, Cost: 12})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !res.Active {
		t.Fatal("new resource must be active")
	}

	exists, err := uc.Exists(ctx, res.ID)
	if err != nil || !exists {
		t.Fatalf("expected resource to exist, got %v %v", exists, err)
	}

	if err := uc.SetActive(ctx, operatorID, res.ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	exists, err = uc.Exists(ctx, res.ID)
	if err != nil || exists {
		t.Fatalf("deactivated resource must not exist for orders, got %v %v", exists, err)
	}

	updated := *res
	updated.Name = "edge-node-2"
	if err := uc.Update(ctx, operatorID, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := uc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "edge-node-2" {
		t.Fatalf("expected updated name, got %s", got.Name)
	}

	count, err := uc.Count(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d %v", count, err)
	}

	if err := uc.Remove(ctx, operatorID, res.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := uc.Get(ctx, res.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after removal, got %v", err)
	}
}
