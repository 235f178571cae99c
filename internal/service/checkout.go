package service

import (
	"context"
	"fmt"
	"log"

	"phonemall-payments/internal/dto"
	"phonemall-payments/internal/metrics"
	"phonemall-payments/internal/model"
	"phonemall-payments/internal/money"
	"phonemall-payments/internal/payment"
	"phonemall-payments/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput carries everything the HTTP layer knows about one checkout
// attempt. UserID is "guest" when the request had no bearer token.
type CheckoutInput struct {
	UserID        string
	CustomerEmail string
	CustomerName  string
	Origin        string
	CartItems     []dto.CartItem
	PaymentMethod string
	Channel       string
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, in *CheckoutInput) (*dto.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, sessionID string) *dto.VerifyResponse
	HandleWebhook(ctx context.Context, payload map[string]string, raw []byte) error
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	provider         payment.Provider
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewCheckoutService(
	db *gorm.DB,
	provider payment.Provider,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		provider:         provider,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

// CreateCheckout revalidates the cart against the trusted catalog, builds
// line items from database prices and delegates to the active provider. The
// anti-tampering check runs strictly before any provider call.
func (s *checkoutServiceImpl) CreateCheckout(ctx context.Context, in *CheckoutInput) (*dto.CheckoutResponse, error) {
	if len(in.CartItems) == 0 {
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	productIDs := make([]string, len(in.CartItems))
	for i, item := range in.CartItems {
		if item.Quantity <= 0 {
			metrics.CheckoutFailures.WithLabelValues("bad_quantity").Inc()
			return nil, ErrBadQuantity
		}
		productIDs[i] = item.ID
	}

	products, err := s.productRepo.FindAvailable(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("validate cart items: %w", err)
	}

	productMap := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	lineItems := make([]payment.LineItem, 0, len(in.CartItems))
	currency := "THB"
	for _, item := range in.CartItems {
		product, ok := productMap[item.ID]
		if !ok {
			metrics.CheckoutFailures.WithLabelValues("unavailable").Inc()
			return nil, fmt.Errorf("product %s: %w", item.ID, ErrProductUnavailable)
		}
		// Client prices are advisory only; any drift beyond a satang means
		// a stale or tampered cart.
		if !money.Equal(item.Price, product.Price) {
			metrics.CheckoutFailures.WithLabelValues("price_mismatch").Inc()
			return nil, ErrPriceMismatch
		}
		currency = product.Currency
		lineItems = append(lineItems, payment.LineItem{
			Name:        product.Name,
			Description: product.Brand + " - " + product.Condition,
			Amount:      product.Price,
			Quantity:    item.Quantity,
			ImageURL:    product.ImageURL,
		})
	}

	req := &payment.CheckoutRequest{
		LineItems:     lineItems,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		UserID:        in.UserID,
		SuccessURL:    in.Origin + "/payment-success?session_id=" + payment.SessionIDPlaceholder,
		CancelURL:     in.Origin + "/payment",
		Metadata: map[string]string{
			"payment_method": in.PaymentMethod,
			"channel":        in.Channel,
			"customerName":   in.CustomerName,
		},
	}

	session, err := s.provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		metrics.CheckoutFailures.WithLabelValues("provider").Inc()
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	orderItems := make([]*model.OrderItem, len(lineItems))
	for i, item := range lineItems {
		orderItems[i] = &model.OrderItem{
			OrderReference: session.ID,
			ProductID:      in.CartItems[i].ID,
			Quantity:       item.Quantity,
			UnitPrice:      item.Amount,
			Currency:       currency,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, &model.Order{
			ReferenceNo:   session.ID,
			Provider:      s.provider.Name(),
			UserID:        in.UserID,
			CustomerEmail: in.CustomerEmail,
			Status:        "CREATED",
			Amount:        req.Total(),
			Currency:      currency,
		}); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckoutSessionsCreated.WithLabelValues(s.provider.Name()).Inc()

	return &dto.CheckoutResponse{
		URL:          session.URL,
		SessionID:    session.ID,
		Presentation: string(session.Presentation),
	}, nil
}

// VerifyPayment never fails as far as the HTTP layer is concerned: transport
// errors become an unverified result so the client can tell "call failed"
// from "not yet paid" by the body, not the status code.
func (s *checkoutServiceImpl) VerifyPayment(ctx context.Context, sessionID string) *dto.VerifyResponse {
	result, err := s.provider.VerifyPayment(ctx, sessionID)
	if err != nil {
		log.Println("verify payment:", err)
		metrics.VerificationResults.WithLabelValues(s.provider.Name(), "error").Inc()
		return &dto.VerifyResponse{
			Verified: false,
			Error:    "Verification failed",
		}
	}

	metrics.VerificationResults.WithLabelValues(s.provider.Name(), result.Status).Inc()

	if result.Verified {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.orderRepo.MarkPaid(ctx, tx, sessionID)
		})
		if err != nil {
			log.Println("mark order paid:", err)
		}
	}

	return &dto.VerifyResponse{
		Verified:      result.Verified,
		Amount:        result.Amount,
		Status:        result.Status,
		CustomerEmail: result.CustomerEmail,
		Error:         result.Err,
	}
}

// HandleWebhook processes a gateway postback. Events are recorded exactly
// once; replays of the same event id are acknowledged without side effects.
func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, payload map[string]string, raw []byte) error {
	referenceNo := firstNonEmpty(payload["refno"], payload["referenceNo"], payload["ref_no"])
	if referenceNo == "" {
		metrics.WebhooksReceived.WithLabelValues("missing_reference").Inc()
		return ErrMissingReference
	}

	status := firstNonEmpty(payload["status"], payload["payment_status"])
	eventID := firstNonEmpty(payload["transaction_id"], payload["txn_id"])
	if eventID == "" {
		// Some gateways omit a transaction id; key the event by reference
		// and status so replays still dedupe.
		eventID = referenceNo + ":" + status
	}

	paid := status == "success" || status == "paid" || status == "00"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fresh, err := s.webhookEventRepo.RecordOnce(ctx, tx, &model.WebhookEvent{
			EventID:     eventID,
			ReferenceNo: referenceNo,
			Status:      status,
			RawPayload:  string(raw),
		})
		if err != nil {
			return fmt.Errorf("record webhook event: %w", err)
		}
		if !fresh {
			log.Println("duplicate webhook event, skipping:", eventID)
			return nil
		}
		if paid {
			return s.orderRepo.MarkPaid(ctx, tx, referenceNo)
		}
		return nil
	})
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues("error").Inc()
		return err
	}

	metrics.WebhooksReceived.WithLabelValues("ok").Inc()
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
