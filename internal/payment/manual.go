package payment

import (
	"context"
	"fmt"
	"html/template"
	"math/rand"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"phonemall-payments/internal/config"
	"phonemall-payments/internal/money"
)

const qrImageService = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="

// ManualProvider produces a self-contained payment page with a PromptPay QR
// and static bank-account details. Settlement is reconciled manually by the
// back office, so verification always reports pending.
type ManualProvider struct {
	bank config.BankAccount

	now     func() time.Time
	randInt func(n int) int
}

func NewManualProvider(bank config.BankAccount) *ManualProvider {
	return &ManualProvider{
		bank:    bank,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

func (p *ManualProvider) Name() string { return "manual" }

// newReferenceNo generates INV + yyyymmdd + 4 random digits. Collisions
// within a day rely on the random suffix.
func (p *ManualProvider) newReferenceNo() string {
	now := p.now()
	return fmt.Sprintf("INV%s%04d", now.Format("20060102"), p.randInt(10000))
}

// promptPayPayload builds the EMV QR payload for the configured PromptPay ID.
// The tag-63 checksum is a real CRC-16/CCITT over the payload including the
// "6304" prefix, unlike the upstream implementation that shipped a hardcoded
// placeholder.
func (p *ManualProvider) promptPayPayload(amountSatang int64) string {
	amountStr := money.FormatBaht(amountSatang)
	merchantInfo := "29370016A0000006770101110113" + p.bank.PromptPayID

	var b strings.Builder
	b.WriteString("000201") // payload format indicator
	b.WriteString("010211") // point of initiation: dynamic
	fmt.Fprintf(&b, "29%02d%s", len(merchantInfo), merchantInfo)
	b.WriteString("5303764") // currency 764 = THB
	b.WriteString("5802TH")
	// TLV lengths count characters, not bytes, so Thai account names stay
	// two digits wide.
	fmt.Fprintf(&b, "59%02d%s", utf8.RuneCountInString(p.bank.AccountName), p.bank.AccountName)
	fmt.Fprintf(&b, "60%02d%s", utf8.RuneCountInString(amountStr), amountStr)
	b.WriteString("6304")
	fmt.Fprintf(&b, "%04X", crc16ccitt([]byte(b.String())))
	return b.String()
}

func (p *ManualProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("no line items in checkout request")
	}

	referenceNo := p.newReferenceNo()
	total := req.Total()
	qrImageURL := qrImageService + url.QueryEscape(p.promptPayPayload(total))

	deepLink := func(scheme string) template.URL {
		return template.URL(fmt.Sprintf("%s://transfer?account=%s&amount=%s", scheme, p.bank.PromptPayID, money.FormatBaht(total)))
	}

	html, err := renderPage("manualPage", manualPageData{
		ReferenceNo:   referenceNo,
		Amount:        money.Display(total),
		QRImageURL:    template.URL(qrImageURL),
		BankName:      p.bank.BankName,
		AccountNumber: p.bank.AccountNumber,
		AccountName:   p.bank.AccountName,
		SuccessURL:    strings.ReplaceAll(req.SuccessURL, SessionIDPlaceholder, referenceNo),
		DeepLinks: []linkField{
			{Name: "SCB Easy", URL: deepLink("scbeasy")},
			{Name: "K Plus", URL: deepLink("kplus")},
			{Name: "K-Bank", URL: deepLink("kbank")},
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

// VerifyPayment reports pending until a back-office transfer confirmation
// arrives out of band. Pending here is a genuine state, not a capability gap.
func (p *ManualProvider) VerifyPayment(ctx context.Context, referenceNo string) (*VerificationResult, error) {
	return &VerificationResult{
		Verified: false,
		Status:   StatusPending,
		Err:      "Payment verification pending. Please confirm payment manually.",
	}, nil
}
