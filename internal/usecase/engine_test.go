package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
	testhelpers "github.com/nodefoundry/depinmarket/internal/test"
)

const (
	operatorID = int64(99)
	buyerID    = int64(7)
	strangerID = int64(8)
)

type engineFixture struct {
	engine    *OrderEngine
	orders    *testhelpers.OrderRepositoryStub
	resources *testhelpers.ResourceRepositoryStub
	balances  *testhelpers.BalanceRepositoryStub
	treasury  *testhelpers.TreasuryRepositoryStub
	settings  *testhelpers.SettingsRepositoryStub
	resource  *model.Resource
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	resources := testhelpers.NewResourceRepositoryStub()
	balances := testhelpers.NewBalanceRepositoryStub()
	treasury := &testhelpers.TreasuryRepositoryStub{}
	settings := testhelpers.NewSettingsRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub(resources, balances, treasury)

	engine := NewOrderEngine(orders, resources, balances, settings)

	ctx := context.Background()
	if err := engine.Initialize(ctx, operatorID); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	for caller, set := range map[string]func(context.Context, int64, string) error{
		"registry": engine.SetRegistryAddress,
		"ledger":   engine.SetLedgerAddress,
		"treasury": engine.SetTreasuryAddress,
	} {
		if err := set(ctx, operatorID, caller+".internal"); err != nil {
			t.Fatalf("set %s address: %v", caller, err)
		}
	}

	resource, err := resources.Create(ctx, model.Resource{Name: "edge-node", Description: "eu-west", Active: true, Uptime: 99, Reliability: 97, Cost: 10})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}

	balances.Balances[buyerID] = 1_000

	return &engineFixture{
		engine:    engine,
		orders:    orders,
		resources: resources,
		balances:  balances,
		treasury:  treasury,
		settings:  settings,
		resource:  resource,
	}
}

func (f *engineFixture) createOrder(t *testing.T) *model.Order {
	t.Helper()
	order, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
		ResourceID:       f.resource.ID,
		ServiceType:      "gpu-compute",
		DurationUnits:    24,
		UnitPrice:        10,
		DeploymentTarget: "edge-eu",
		ServiceParams:    `{"gpu":"a100"}`,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func (f *engineFixture) mustEscrowed(t *testing.T, want int64) {
	t.Helper()
	got, err := f.engine.TotalEscrowed(context.Background())
	if err != nil {
		t.Fatalf("total escrowed: %v", err)
	}
	if got != want {
		t.Fatalf("expected total escrowed %d, got %d", want, got)
	}
}

func TestInitializeOnlyOnce(t *testing.T) {
	f := newEngineFixture(t)
	err := f.engine.Initialize(context.Background(), strangerID)
	if !errors.Is(err, domainErrors.ErrAlreadyInitialized) {
		t.Fatalf("expected already initialized, got %v", err)
	}
}

func TestCollaboratorSettersRequireOperator(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if err := f.engine.SetRegistryAddress(ctx, strangerID, "x"); !errors.Is(err, domainErrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
	if err := f.engine.SetTreasuryAddress(ctx, operatorID, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty address, got %v", err)
	}
}

func TestCreateOrderEscrowsFunds(t *testing.T) {
	f := newEngineFixture(t)

	order := f.createOrder(t)

	if order.TotalAmount != 240 {
		t.Fatalf("expected total amount 240, got %d", order.TotalAmount)
	}
	if order.EscrowedAmount != 240 {
		t.Fatalf("expected escrowed amount 240, got %d", order.EscrowedAmount)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if f.balances.Balances[buyerID] != 760 {
		t.Fatalf("expected buyer balance 760, got %d", f.balances.Balances[buyerID])
	}
	f.mustEscrowed(t, 240)

	count, err := f.engine.OrderCount(context.Background())
	if err != nil {
		t.Fatalf("order count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected order count 1, got %d", count)
	}
}

func TestCreateOrderRejectsNonPositiveAmounts(t *testing.T) {
	f := newEngineFixture(t)

	cases := []struct {
		name     string
		duration int64
		price    int64
	}{
		{"zero duration", 0, 10},
		{"zero price", 24, 0},
		{"negative price", 24, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
				ResourceID:    f.resource.ID,
				DurationUnits: tc.duration,
				UnitPrice:     tc.price,
			})
			if !errors.Is(err, domainErrors.ErrInvalidAmount) {
				t.Fatalf("expected invalid amount, got %v", err)
			}
		})
	}

	f.mustEscrowed(t, 0)
	if len(f.orders.OrdersBy) != 0 {
		t.Fatal("no order must be persisted after validation failure")
	}
}

func TestCreateOrderRejectsOverflowingTotal(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
		ResourceID:    f.resource.ID,
		DurationUnits: math.MaxInt64/3 + 1,
		UnitPrice:     3,
	})
	if !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	f.mustEscrowed(t, 0)
	if len(f.orders.OrdersBy) != 0 {
		t.Fatal("no order must be persisted after validation failure")
	}
}

func TestCreateOrderUnknownResource(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
		ResourceID:    "00deadbeef" + f.resource.ID[10:],
		DurationUnits: 24,
		UnitPrice:     10,
	})
	if !errors.Is(err, domainErrors.ErrInvalidResource) {
		t.Fatalf("expected invalid resource, got %v", err)
	}

	f.mustEscrowed(t, 0)
	if f.balances.Balances[buyerID] != 1_000 {
		t.Fatalf("buyer balance must be untouched, got %d", f.balances.Balances[buyerID])
	}
}

func TestCreateOrderInactiveResource(t *testing.T) {
	f := newEngineFixture(t)
	if err := f.resources.SetActive(context.Background(), f.resource.ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	_, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
		ResourceID:    f.resource.ID,
		DurationUnits: 24,
		UnitPrice:     10,
	})
	if !errors.Is(err, domainErrors.ErrInvalidResource) {
		t.Fatalf("expected invalid resource, got %v", err)
	}
}

func TestCreateOrderInsufficientBalance(t *testing.T) {
	f := newEngineFixture(t)
	f.balances.Balances[buyerID] = 100

	_, err := f.engine.CreateOrder(context.Background(), buyerID, model.OrderSpec{
		ResourceID:    f.resource.ID,
		DurationUnits: 24,
		UnitPrice:     10,
	})
	if !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}

	f.mustEscrowed(t, 0)
	if f.balances.Balances[buyerID] != 100 {
		t.Fatalf("buyer balance must be untouched, got %d", f.balances.Balances[buyerID])
	}
}

func TestCreateOrderRequiresConfiguredCollaborators(t *testing.T) {
	resources := testhelpers.NewResourceRepositoryStub()
	balances := testhelpers.NewBalanceRepositoryStub()
	settings := testhelpers.NewSettingsRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub(resources, balances, &testhelpers.TreasuryRepositoryStub{})
	engine := NewOrderEngine(orders, resources, balances, settings)

	ctx := context.Background()
	if err := engine.Initialize(ctx, operatorID); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	_, err := engine.CreateOrder(ctx, buyerID, model.OrderSpec{ResourceID: "r", DurationUnits: 1, UnitPrice: 1})
	if !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestUpdateStatusPermissive(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	// The operator may report any known status without edge validation.
	ref := "0xdeployment"
	if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, model.OrderStatusDeployed, &ref); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, err := f.engine.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != model.OrderStatusDeployed {
		t.Fatalf("expected deployed, got %s", got.Status)
	}
	if got.ExternalReference == nil || *got.ExternalReference != ref {
		t.Fatalf("expected external reference %q, got %v", ref, got.ExternalReference)
	}

	// Status updates alone never move escrow.
	f.mustEscrowed(t, 240)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)

	err := f.engine.UpdateStatus(context.Background(), operatorID, order.ID, model.OrderStatus("EXPLODED"), nil)
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestUpdateStatusRequiresOperator(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)

	err := f.engine.UpdateStatus(context.Background(), buyerID, order.ID, model.OrderStatusActive, nil)
	if !errors.Is(err, domainErrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.UpdateStatus(context.Background(), operatorID, "missing", model.OrderStatusActive, nil)
	if !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestCompleteOrderReleasesEscrow(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, model.OrderStatusDeployed, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}

	completed, err := f.engine.CompleteOrder(ctx, operatorID, order.ID)
	if err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if completed.Status != model.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.EscrowedAmount != 0 {
		t.Fatalf("expected zero escrowed amount, got %d", completed.EscrowedAmount)
	}
	f.mustEscrowed(t, 0)
	if f.treasury.Ledger.Balance != 240 || f.treasury.Ledger.TotalReceived != 240 {
		t.Fatalf("expected treasury credit 240, got %+v", f.treasury.Ledger)
	}
	// Completion releases to the treasury, not back to the buyer.
	if f.balances.Balances[buyerID] != 760 {
		t.Fatalf("buyer balance must stay debited, got %d", f.balances.Balances[buyerID])
	}
}

func TestCompleteOrderOnlyFromDeployed(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	for _, status := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusActive,
		model.OrderStatusCancelled,
		model.OrderStatusFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			order := f.createOrder(t)
			if status != model.OrderStatusPending {
				if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, status, nil); err != nil {
					t.Fatalf("update status: %v", err)
				}
			}
			if _, err := f.engine.CompleteOrder(ctx, operatorID, order.ID); !errors.Is(err, domainErrors.ErrInvalidStatus) {
				t.Fatalf("expected invalid status, got %v", err)
			}
		})
	}
}

func TestRefundAfterActivationFails(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, model.OrderStatusActive, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}

	refunded, err := f.engine.RefundOrder(ctx, operatorID, order.ID)
	if err != nil {
		t.Fatalf("refund order: %v", err)
	}
	// Started but not completed: Failed, not Cancelled.
	if refunded.Status != model.OrderStatusFailed {
		t.Fatalf("expected failed, got %s", refunded.Status)
	}
	if refunded.EscrowedAmount != 0 {
		t.Fatalf("expected zero escrow, got %d", refunded.EscrowedAmount)
	}
	f.mustEscrowed(t, 0)
	if f.balances.Balances[buyerID] != 1_000 {
		t.Fatalf("expected buyer refunded to 1000, got %d", f.balances.Balances[buyerID])
	}
}

func TestRefundCompletedOrderRejected(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, model.OrderStatusDeployed, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := f.engine.CompleteOrder(ctx, operatorID, order.ID); err != nil {
		t.Fatalf("complete order: %v", err)
	}

	if _, err := f.engine.RefundOrder(ctx, operatorID, order.ID); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestCancelOrderByBuyer(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	cancelled, err := f.engine.CancelOrder(ctx, buyerID, order.ID)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	f.mustEscrowed(t, 0)
	if f.balances.Balances[buyerID] != 1_000 {
		t.Fatalf("expected full refund, got balance %d", f.balances.Balances[buyerID])
	}
}

func TestCancelOrderAuthorization(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	ctx := context.Background()

	if _, err := f.engine.CancelOrder(ctx, strangerID, order.ID); !errors.Is(err, domainErrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	if err := f.engine.UpdateStatus(ctx, operatorID, order.ID, model.OrderStatusActive, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := f.engine.CancelOrder(ctx, buyerID, order.ID); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status after activation, got %v", err)
	}
}

func TestEscrowCounterMatchesOrders(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first := f.createOrder(t)
	second := f.createOrder(t)
	f.mustEscrowed(t, 480)

	if err := f.engine.UpdateStatus(ctx, operatorID, first.ID, model.OrderStatusDeployed, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := f.engine.CompleteOrder(ctx, operatorID, first.ID); err != nil {
		t.Fatalf("complete order: %v", err)
	}
	f.mustEscrowed(t, 240)

	if _, err := f.engine.CancelOrder(ctx, buyerID, second.ID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	f.mustEscrowed(t, 0)

	// Escrow per order is all-or-nothing.
	for _, id := range []string{first.ID, second.ID} {
		order, err := f.engine.GetOrder(ctx, id)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if order.EscrowedAmount != 0 && order.EscrowedAmount != order.TotalAmount {
			t.Fatalf("escrowed amount must be 0 or total, got %d of %d", order.EscrowedAmount, order.TotalAmount)
		}
	}
}

func TestListingsReflectHistory(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first := f.createOrder(t)
	second := f.createOrder(t)
	if _, err := f.engine.CancelOrder(ctx, buyerID, first.ID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	byBuyer, err := f.engine.ListOrderIDsByBuyer(ctx, buyerID)
	if err != nil {
		t.Fatalf("list by buyer: %v", err)
	}
	if len(byBuyer) != 2 || byBuyer[0] != first.ID || byBuyer[1] != second.ID {
		t.Fatalf("cancelled orders must stay listed in creation order, got %v", byBuyer)
	}

	byResource, err := f.engine.ListOrderIDsByResource(ctx, f.resource.ID)
	if err != nil {
		t.Fatalf("list by resource: %v", err)
	}
	if len(byResource) != 2 {
		t.Fatalf("expected 2 orders for resource, got %d", len(byResource))
	}

	again, err := f.engine.ListOrderIDsByBuyer(ctx, buyerID)
	if err != nil {
		t.Fatalf("list by buyer: %v", err)
	}
	if len(again) != len(byBuyer) {
		t.Fatal("repeated listing without mutations must be identical")
	}
}

func TestIsOperator(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	ok, err := f.engine.IsOperator(ctx, operatorID)
	if err != nil || !ok {
		t.Fatalf("expected operator, got %v %v", ok, err)
	}
	ok, err = f.engine.IsOperator(ctx, buyerID)
	if err != nil || ok {
		t.Fatalf("expected non-operator, got %v %v", ok, err)
	}
}

var _ repository.OrderRepository = (*testhelpers.OrderRepositoryStub)(nil)
var _ repository.ResourceRepository = (*testhelpers.ResourceRepositoryStub)(nil)
var _ repository.BalanceRepository = (*testhelpers.BalanceRepositoryStub)(nil)
var _ repository.SettingsRepository = (*testhelpers.SettingsRepositoryStub)(nil)

func TestRecordDeploymentStatus(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)

	ref := "deploy-17"
	if err := f.engine.RecordDeploymentStatus(context.Background(), order.ID, model.OrderStatusDeployed, &ref); err != nil {
		t.Fatalf("record status: %v", err)
	}

	updated, err := f.engine.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if updated.Status != model.OrderStatusDeployed {
		t.Fatalf("expected deployed status, got %v", updated.Status)
	}
	if updated.ExternalReference == nil || *updated.ExternalReference != ref {
		t.Fatalf("expected reference %q, got %v", ref, updated.ExternalReference)
	}
}

func TestRecordDeploymentStatusRejectsUnknown(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)

	err := f.engine.RecordDeploymentStatus(context.Background(), order.ID, model.OrderStatus("NONSENSE"), nil)
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestAbortDeploymentRefundsEscrow(t *testing.T) {
	f := newEngineFixture(t)
	order := f.createOrder(t)
	if err := f.engine.RecordDeploymentStatus(context.Background(), order.ID, model.OrderStatusActive, nil); err != nil {
		t.Fatalf("record status: %v", err)
	}

	aborted, err := f.engine.AbortDeployment(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("abort deployment: %v", err)
	}
	if aborted.Status != model.OrderStatusFailed {
		t.Fatalf("expected failed status, got %v", aborted.Status)
	}
	if f.balances.Balances[buyerID] != 1_000 {
		t.Fatalf("expected full refund, got %d", f.balances.Balances[buyerID])
	}
	f.mustEscrowed(t, 0)
}
