package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"phonemall-payments/internal/dto"
	"phonemall-payments/internal/model"
	"phonemall-payments/internal/payment"
	"phonemall-payments/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeProvider counts calls and returns canned results.
type fakeProvider struct {
	createCalls int
	verifyCalls int

	session   *payment.CheckoutSession
	createErr error

	verification *payment.VerificationResult
	verifyErr    error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, req *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &payment.CheckoutSession{
		ID:           fmt.Sprintf("FAKE%04d", f.createCalls),
		URL:          "data:text/html;base64,PGh0bWw+",
		Presentation: payment.PresentationInlineDocument,
	}, nil
}

func (f *fakeProvider) VerifyPayment(_ context.Context, _ string) (*payment.VerificationResult, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verification, nil
}

type testEnv struct {
	db        *gorm.DB
	provider  *fakeProvider
	service   CheckoutService
	orderRepo repository.OrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.WebhookEvent{},
	))
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	require.NoError(t, db.Exec("DELETE FROM order_items").Error)
	require.NoError(t, db.Exec("DELETE FROM webhook_events").Error)

	require.NoError(t, db.Create(&model.Product{
		ID: "1", Name: "iPhone 15 Pro Max", Brand: "Apple", Condition: "new",
		Price: 4590000, Currency: "THB", Status: model.ProductAvailable,
	}).Error)
	require.NoError(t, db.Create(&model.Product{
		ID: "test-1", Name: "Test Product", Brand: "Test", Condition: "new",
		Price: 100, Currency: "THB", Status: model.ProductAvailable,
	}).Error)

	provider := &fakeProvider{}
	orderRepo := repository.NewOrderRepository(db)
	svc := NewCheckoutService(
		db,
		provider,
		repository.NewProductRepository(db),
		orderRepo,
		repository.NewWebhookEventRepository(db),
	)

	return &testEnv{db: db, provider: provider, service: svc, orderRepo: orderRepo}
}

func checkoutInput(items ...dto.CartItem) *CheckoutInput {
	return &CheckoutInput{
		UserID:    "guest",
		Origin:    "http://localhost:3000",
		CartItems: items,
	}
}

func TestCreateCheckoutHappyPath(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Name: "iPhone 15 Pro Max", Price: 45900.00, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, env.provider.createCalls)
	assert.Equal(t, "FAKE0001", resp.SessionID)
	assert.Contains(t, resp.URL, "data:text/html;base64,")
	assert.Equal(t, string(payment.PresentationInlineDocument), resp.Presentation)

	order, err := env.orderRepo.FindByReference(context.Background(), "FAKE0001")
	require.NoError(t, err)
	assert.Equal(t, "CREATED", order.Status)
	assert.Equal(t, int64(4590000), order.Amount)
	assert.Equal(t, "fake", order.Provider)
	assert.Equal(t, "guest", order.UserID)

	items, err := env.orderRepo.GetOrderItems(context.Background(), "FAKE0001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, int64(4590000), items[0].UnitPrice)
}

func TestCreateCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, env.provider.createCalls)
}

func TestCreateCheckoutTamperedPrice(t *testing.T) {
	env := newTestEnv(t)

	// Client claims the 45900 THB phone costs 1 THB.
	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Name: "iPhone 15 Pro Max", Price: 1, Quantity: 1},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Equal(t, "Price mismatch detected. Please refresh your cart.", err.Error())
	assert.Equal(t, 0, env.provider.createCalls, "provider must not be called for a tampered cart")
}

func TestCreateCheckoutUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "nope", Price: 100, Quantity: 1},
	))
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Equal(t, 0, env.provider.createCalls)
}

func TestCreateCheckoutBadQuantity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 0},
	))
	assert.ErrorIs(t, err, ErrBadQuantity)
	assert.Equal(t, 0, env.provider.createCalls)
}

func TestCreateCheckoutProviderError(t *testing.T) {
	env := newTestEnv(t)
	env.provider.createErr = errors.New("gateway down")

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 1},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway down")
}

func TestVerifyPaymentMarksOrderPaid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 1},
	))
	require.NoError(t, err)

	env.provider.verification = &payment.VerificationResult{
		Verified: true,
		Amount:   4590000,
		Status:   payment.StatusPaid,
	}

	resp := env.service.VerifyPayment(context.Background(), "FAKE0001")
	assert.True(t, resp.Verified)
	assert.Equal(t, payment.StatusPaid, resp.Status)

	paid, err := env.orderRepo.IsPaid(context.Background(), "FAKE0001")
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestVerifyPaymentPendingLeavesOrderAlone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 1},
	))
	require.NoError(t, err)

	env.provider.verification = &payment.VerificationResult{
		Verified: false,
		Status:   payment.StatusPending,
		Err:      "not paid yet",
	}

	first := env.service.VerifyPayment(context.Background(), "FAKE0001")
	second := env.service.VerifyPayment(context.Background(), "FAKE0001")

	assert.False(t, first.Verified)
	assert.Equal(t, first, second, "verification must be idempotent without upstream change")

	paid, err := env.orderRepo.IsPaid(context.Background(), "FAKE0001")
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestVerifyPaymentTransportErrorNeverPropagates(t *testing.T) {
	env := newTestEnv(t)
	env.provider.verifyErr = errors.New("connection refused")

	resp := env.service.VerifyPayment(context.Background(), "FAKE0001")
	assert.False(t, resp.Verified)
	assert.Equal(t, "Verification failed", resp.Error)
}

func TestHandleWebhookMarksPaidOnce(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 1},
	))
	require.NoError(t, err)

	payload := map[string]string{
		"refno":          "FAKE0001",
		"status":         "success",
		"transaction_id": "txn-1",
	}

	require.NoError(t, env.service.HandleWebhook(context.Background(), payload, []byte(`{}`)))

	paid, err := env.orderRepo.IsPaid(context.Background(), "FAKE0001")
	require.NoError(t, err)
	assert.True(t, paid)

	// Replaying the same event is acknowledged without error.
	require.NoError(t, env.service.HandleWebhook(context.Background(), payload, []byte(`{}`)))
}

func TestHandleWebhookMissingReference(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.HandleWebhook(context.Background(), map[string]string{"status": "success"}, nil)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestHandleWebhookNonPaidStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.CreateCheckout(context.Background(), checkoutInput(
		dto.CartItem{ID: "1", Price: 45900, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, env.service.HandleWebhook(context.Background(), map[string]string{
		"refno":  "FAKE0001",
		"status": "failed",
	}, nil))

	paid, err := env.orderRepo.IsPaid(context.Background(), "FAKE0001")
	require.NoError(t, err)
	assert.False(t, paid)
}
