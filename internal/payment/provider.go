package payment

import (
	"context"
	"strconv"
	"strings"
)

// Presentation tells the client how to render a checkout session URL.
type Presentation string

const (
	// PresentationRedirect is a plain external link the client navigates to.
	PresentationRedirect Presentation = "redirect"
	// PresentationInlineDocument is a full HTML page delivered as a
	// data:text/html;base64 URL, rendered in an iframe or opened directly.
	PresentationInlineDocument Presentation = "inline_document"
)

// Verification statuses. Unsupported means the adapter has no way to check
// payment state at all, which is different from a payment that simply has not
// arrived yet.
const (
	StatusPending     = "pending"
	StatusPaid        = "paid"
	StatusFailed      = "failed"
	StatusUnsupported = "unsupported"
)

// Payment method names accepted from clients.
const (
	MethodPromptPay    = "promptpay"
	MethodBankTransfer = "bank-transfer"
	MethodCreditCard   = "credit-card"
)

// SessionIDPlaceholder in a success URL is replaced by the adapter with its
// own reference number before the URL is embedded in a payment page.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// LineItem is one priced, quantified entry of a checkout request.
// Amount is always in satang; callers convert from THB before building one.
type LineItem struct {
	Name        string
	Description string
	Amount      int64
	Quantity    int64
	ImageURL    string
}

type CheckoutRequest struct {
	LineItems     []LineItem
	CustomerName  string
	CustomerEmail string
	CustomerID    string
	UserID        string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Total returns the request total in satang.
func (r *CheckoutRequest) Total() int64 {
	var total int64
	for _, item := range r.LineItems {
		total += item.Amount * item.Quantity
	}
	return total
}

// ProductDetail builds the "name xN, name xN" summary gateways expect.
func (r *CheckoutRequest) ProductDetail() string {
	parts := make([]string, len(r.LineItems))
	for i, item := range r.LineItems {
		parts[i] = item.Name + " x" + strconv.FormatInt(item.Quantity, 10)
	}
	return strings.Join(parts, ", ")
}

// CheckoutSession is the provider-side record of a payment attempt. ID is the
// provider's reference number and the sole correlator for later verification.
type CheckoutSession struct {
	ID           string
	URL          string
	Presentation Presentation
}

type VerificationResult struct {
	Verified      bool
	Amount        int64
	Status        string
	CustomerEmail string
	Err           string
}

// Provider is the contract every payment rail implements. Adapters must treat
// "not yet paid" as a normal VerificationResult, reserving the error return
// for transport and configuration failures.
type Provider interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	VerifyPayment(ctx context.Context, referenceNo string) (*VerificationResult, error)
}
