package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"time"

	"phonemall-payments/internal/config"
	"phonemall-payments/internal/money"
)

// PaySolutionsProvider is the legacy gateway, kept as a vendor migration
// path. It shares the QR-vs-form split with GB Prime Pay but has its own
// reference format and a one-shot retry when the upstream rejects a
// reference number as a duplicate.
type PaySolutionsProvider struct {
	cfg        config.PaySolutions
	httpClient *http.Client

	now func() time.Time
}

func NewPaySolutionsProvider(cfg config.PaySolutions) *PaySolutionsProvider {
	return &PaySolutionsProvider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

func (p *PaySolutionsProvider) Name() string { return "paysolutions" }

// newReferenceNo returns the 12-digit YYMMDDHHMMSS reference the gateway
// expects.
func (p *PaySolutionsProvider) newReferenceNo() string {
	return p.now().Format("060102150405")
}

func (p *PaySolutionsProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("no line items in checkout request")
	}
	if p.cfg.MerchantID == "" {
		return nil, fmt.Errorf("paysolutions merchant id is not configured")
	}

	referenceNo := p.newReferenceNo()
	channel := req.Metadata["channel"]
	if channel == "" {
		channel = "full"
	}

	if channel == "promptpay" && p.cfg.BearerToken != "" {
		return p.createPromptPaySession(ctx, req, referenceNo, true)
	}
	return p.createFormSession(req, referenceNo, channel)
}

type paySolutionsQRResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		OrderNo     json.Number `json:"orderNo"`
		ReferenceNo string      `json:"referenceNo"`
		Total       json.Number `json:"total"`
		ExpireDate  string      `json:"expiredate"`
		Image       string      `json:"image"`
	} `json:"data"`
}

func (p *PaySolutionsProvider) createPromptPaySession(ctx context.Context, req *CheckoutRequest, referenceNo string, retryOnDuplicate bool) (*CheckoutSession, error) {
	endpoint, err := url.Parse(p.cfg.PromptPayURL)
	if err != nil {
		return nil, fmt.Errorf("parse promptpay api url: %w", err)
	}
	q := endpoint.Query()
	q.Set("merchantID", p.cfg.MerchantID)
	q.Set("productDetail", req.ProductDetail())
	q.Set("customerEmail", req.CustomerEmail)
	q.Set("customerName", req.CustomerName)
	q.Set("total", money.FormatBaht(req.Total()))
	q.Set("referenceNo", referenceNo)
	endpoint.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.BearerToken)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read promptpay response: %w", err)
	}

	var result paySolutionsQRResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode promptpay response: %w", err)
	}

	if result.Message == "duplicate reference number" {
		if !retryOnDuplicate {
			return nil, fmt.Errorf("duplicate reference number after retry")
		}
		return p.createPromptPaySession(ctx, req, p.newReferenceNo(), false)
	}
	if result.Message == "incomplete parameter" || result.Status == "error" {
		return nil, fmt.Errorf("create promptpay session: %s", result.Message)
	}
	if result.Status != "success" || result.Data.Image == "" {
		return nil, fmt.Errorf("unexpected response from promptpay api: %s", string(body))
	}

	total := result.Data.Total.String()
	if total == "" {
		total = money.FormatBaht(req.Total())
	}

	html, err := renderPage("qrPage", qrPageData{
		Title:       "PromptPay Payment",
		QRImage:     template.URL(result.Data.Image),
		Amount:      "฿" + total,
		ReferenceNo: referenceNo,
		OrderNo:     result.Data.OrderNo.String(),
		ExpireTime:  result.Data.ExpireDate,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ID:           referenceNo,
		URL:          dataURL(html),
		Presentation: PresentationInlineDocument,
	}, nil
}

func (p *PaySolutionsProvider) createFormSession(req *CheckoutRequest, referenceNo, channel string) (*CheckoutSession, error) {
	postbackURL := req.Metadata["postbackUrl"]
	if postbackURL == "" {
		postbackURL = p.cfg.PostbackURL
	}

	fields := []formField{
		{Name: "customeremail", Value: req.CustomerEmail},
		{Name: "productdetail", Value: req.ProductDetail()},
		{Name: "refno", Value: referenceNo},
		{Name: "merchantid", Value: p.cfg.MerchantID},
		{Name: "cc", Value: p.cfg.CurrencyCode},
		{Name: "total", Value: money.FormatBaht(req.Total())},
		{Name: "lang", Value: p.cfg.Language},
		{Name: "returnurl", Value: replaceSessionID(req.SuccessURL, referenceNo)},
		{Name: "cancelurl", Value: req.CancelURL},
		{Name: "postbackurl", Value: postbackURL},
	}
	if channel != "" {
		fields = append(fields, formField{Name: "channel", Value: channel})
	}
	if v := req.Metadata["bankins"]; v != "" {
		fields = append(fields, formField{Name: "bankins", Value: v})
	}
	if v := req.Metadata["monthins"]; v != "" {
		fields = append(fields, formField{Name: "monthins", Value: v})
	}

	html, err := renderPage("autoSubmitForm", autoSubmitFormData{
		Title:     "Redirecting to Paysolutions...",
		ActionURL: p.cfg.PaymentURL,
		Fields:    fields,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{
		ID:           referenceNo,
		URL:          dataURL(html),
		Presentation: PresentationInlineDocument,
	}, nil
}

// VerifyPayment is not available for this gateway: the status-check
// integration was never completed upstream, and settlement is reported via
// the postback webhook instead. Callers can tell this apart from a payment
// that is still pending by the unsupported status.
func (p *PaySolutionsProvider) VerifyPayment(ctx context.Context, referenceNo string) (*VerificationResult, error) {
	return &VerificationResult{
		Verified: false,
		Status:   StatusUnsupported,
		Err:      "Payment verification is not supported by this provider. Check the postback webhook or the Paysolutions dashboard.",
	}, nil
}
