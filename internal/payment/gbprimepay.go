package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"phonemall-payments/internal/config"
	"phonemall-payments/internal/money"
)

// GBPrimePayProvider integrates the hosted GB Prime Pay gateway. PromptPay
// goes through the synchronous QR-issuance API; card and internet-banking
// channels require a browser-native form POST, wrapped in an auto-submitting
// inline page so the client treats every channel as "render this URL".
type GBPrimePayProvider struct {
	cfg        config.GBPrimePay
	httpClient *http.Client

	now     func() time.Time
	randInt func(n int) int
}

func NewGBPrimePayProvider(cfg config.GBPrimePay) *GBPrimePayProvider {
	return &GBPrimePayProvider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now:     time.Now,
		randInt: rand.Intn,
	}
}

func (p *GBPrimePayProvider) Name() string { return "gbprimepay" }

func (p *GBPrimePayProvider) newReferenceNo() string {
	return fmt.Sprintf("GBP%d%04d", p.now().UnixMilli(), p.randInt(10000))
}

// paymentType maps the storefront's payment-method names onto GB Prime Pay's
// channel vocabulary.
func paymentType(method string) string {
	switch method {
	case MethodBankTransfer:
		return "internet_banking"
	case MethodCreditCard:
		return "creditcard"
	default:
		return "promptpay"
	}
}

func (p *GBPrimePayProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("no line items in checkout request")
	}

	referenceNo := p.newReferenceNo()
	amount := money.FormatBaht(req.Total())
	method := req.Metadata["payment_method"]

	if paymentType(method) == "promptpay" {
		return p.createQRSession(ctx, req, referenceNo, amount)
	}
	return p.createFormSession(req, referenceNo, amount, paymentType(method))
}

type gbQRResponse struct {
	QRCode      string `json:"qrCode"`
	QRImage     string `json:"qrImage"`
	ExpiredTime string `json:"expiredTime"`
}

func (p *GBPrimePayProvider) createQRSession(ctx context.Context, req *CheckoutRequest, referenceNo, amount string) (*CheckoutSession, error) {
	payload := map[string]string{
		"publicKey":     p.cfg.PublicKey,
		"amount":        amount,
		"referenceNo":   referenceNo,
		"detail":        req.ProductDetail(),
		"customerName":  req.CustomerName,
		"customerEmail": req.CustomerEmail,
	}

	var result gbQRResponse
	if err := p.post(ctx, p.cfg.APIURL+"/v3/qrcode", payload, &result); err != nil {
		return nil, fmt.Errorf("create promptpay qr: %w", err)
	}

	qrImage := result.QRImage
	if qrImage == "" {
		qrImage = result.QRCode
	}
	if qrImage == "" {
		return nil, fmt.Errorf("gbprimepay returned no qr code for reference %s", referenceNo)
	}

	expire := result.ExpiredTime
	if expire == "" {
		expire = "15 minutes"
	}

	html, err := renderPage("qrPage", qrPageData{
		Title:       "PromptPay Payment",
		QRImage:     template.URL(qrImage),
		Amount:      "฿" + amount,
		ReferenceNo: referenceNo,
		ExpireTime:  expire,
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

func (p *GBPrimePayProvider) createFormSession(req *CheckoutRequest, referenceNo, amount, payType string) (*CheckoutSession, error) {
	html, err := renderPage("autoSubmitForm", autoSubmitFormData{
		Title:     "Redirecting to GB Prime Pay...",
		ActionURL: p.cfg.CheckoutURL,
		Fields: []formField{
			{Name: "publicKey", Value: p.cfg.PublicKey},
			{Name: "amount", Value: amount},
			{Name: "referenceNo", Value: referenceNo},
			{Name: "detail", Value: req.ProductDetail()},
			{Name: "customerName", Value: req.CustomerName},
			{Name: "customerEmail", Value: req.CustomerEmail},
			{Name: "merchantDefined1", Value: req.UserID},
			{Name: "merchantDefined2", Value: req.Metadata["payment_method"]},
			{Name: "merchantDefined3", Value: req.Metadata["channel"]},
			{Name: "responseUrl", Value: replaceSessionID(req.SuccessURL, referenceNo)},
			{Name: "backgroundUrl", Value: req.Metadata["postbackUrl"]},
			{Name: "paymentType", Value: payType},
		},
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

type gbStatusResponse struct {
	ResultCode    string `json:"resultCode"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	CustomerEmail string `json:"customerEmail"`
	Message       string `json:"message"`
}

// VerifyPayment checks the gateway's status endpoint. Any of resultCode "00",
// status "success" or status "paid" counts as verified.
func (p *GBPrimePayProvider) VerifyPayment(ctx context.Context, referenceNo string) (*VerificationResult, error) {
	payload := map[string]string{
		"publicKey":   p.cfg.PublicKey,
		"referenceNo": referenceNo,
	}

	var result gbStatusResponse
	if err := p.post(ctx, p.cfg.APIURL+"/v3/checkStatus", payload, &result); err != nil {
		return nil, fmt.Errorf("check payment status: %w", err)
	}

	paid := result.ResultCode == "00" || result.Status == "success" || result.Status == "paid"

	var amount int64
	if result.Amount != "" {
		if baht, err := strconv.ParseFloat(result.Amount, 64); err == nil {
			amount = money.ToSatang(baht)
		}
	}

	status := result.Status
	if status == "" {
		if paid {
			status = StatusPaid
		} else {
			status = StatusPending
		}
	}

	verification := &VerificationResult{
		Verified:      paid,
		Amount:        amount,
		Status:        status,
		CustomerEmail: result.CustomerEmail,
	}
	if !paid {
		verification.Err = result.Message
		if verification.Err == "" {
			verification.Err = "Payment not verified"
		}
	}
	return verification, nil
}

func (p *GBPrimePayProvider) post(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gbprimepay error %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gbprimepay response: %w", err)
	}
	return nil
}

func replaceSessionID(url, referenceNo string) string {
	return strings.ReplaceAll(url, SessionIDPlaceholder, referenceNo)
}
