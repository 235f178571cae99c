package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phonemall-payments/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGBTestProvider(handler http.Handler) (*GBPrimePayProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	p := NewGBPrimePayProvider(config.GBPrimePay{
		PublicKey:   "pub-key",
		SecretKey:   "secret-key",
		APIURL:      srv.URL,
		CheckoutURL: srv.URL + "/v3/checkout",
	})
	return p, srv
}

func decodeInlineDocument(t *testing.T, session *CheckoutSession) string {
	t.Helper()
	require.Equal(t, PresentationInlineDocument, session.Presentation)
	require.True(t, strings.HasPrefix(session.URL, "data:text/html;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(session.URL, "data:text/html;base64,"))
	require.NoError(t, err)
	return string(raw)
}

func TestPaymentTypeMapping(t *testing.T) {
	assert.Equal(t, "promptpay", paymentType(MethodPromptPay))
	assert.Equal(t, "internet_banking", paymentType(MethodBankTransfer))
	assert.Equal(t, "creditcard", paymentType(MethodCreditCard))
	assert.Equal(t, "promptpay", paymentType(""))
	assert.Equal(t, "promptpay", paymentType("something-else"))
}

func TestGBPrimePayQRSession(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/qrcode", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"qrImage":     "data:image/png;base64,QRDATA",
			"expiredTime": "15 minutes",
		})
	}))
	defer srv.Close()

	req := testCheckoutRequest()
	req.Metadata["payment_method"] = MethodPromptPay

	session, err := p.CreateCheckoutSession(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "pub-key", gotBody["publicKey"])
	assert.Equal(t, "45900.00", gotBody["amount"])
	assert.Equal(t, "iPhone 15 Pro Max x1", gotBody["detail"])
	assert.True(t, strings.HasPrefix(session.ID, "GBP"))

	html := decodeInlineDocument(t, session)
	assert.Contains(t, html, "data:image/png;base64,QRDATA")
	assert.Contains(t, html, session.ID)
	assert.Contains(t, html, "15 minutes")
}

func TestGBPrimePayFormSession(t *testing.T) {
	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("credit-card flow must not call the QR API")
	}))
	defer srv.Close()

	req := testCheckoutRequest()
	req.Metadata["payment_method"] = MethodCreditCard
	req.Metadata["channel"] = "full"

	session, err := p.CreateCheckoutSession(context.Background(), req)
	require.NoError(t, err)

	html := decodeInlineDocument(t, session)
	assert.Contains(t, html, `action="`+srv.URL+`/v3/checkout"`)
	assert.Contains(t, html, `name="paymentType" value="creditcard"`)
	assert.Contains(t, html, `name="referenceNo" value="`+session.ID+`"`)
	assert.Contains(t, html, `name="merchantDefined1" value="guest"`)
	assert.Contains(t, html, `name="merchantDefined2" value="`+MethodCreditCard+`"`)
	assert.Contains(t, html, `name="merchantDefined3" value="full"`)
	assert.Contains(t, html, "document.getElementById('paymentForm').submit()")
	// success URL placeholder substituted
	assert.Contains(t, html, "session_id="+session.ID)
}

func TestGBPrimePayQRSessionAPIError(t *testing.T) {
	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "merchant not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	req := testCheckoutRequest()
	req.Metadata["payment_method"] = MethodPromptPay

	_, err := p.CreateCheckoutSession(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merchant not found")
}

func TestGBPrimePayVerifyPayment(t *testing.T) {
	cases := []struct {
		name     string
		response map[string]string
		verified bool
	}{
		{"result code 00", map[string]string{"resultCode": "00"}, true},
		{"status success", map[string]string{"status": "success"}, true},
		{"status paid", map[string]string{"status": "paid", "amount": "45900.00"}, true},
		{"pending", map[string]string{"status": "pending", "message": "not paid yet"}, false},
		{"failed result code", map[string]string{"resultCode": "99", "status": "failed"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v3/checkStatus", r.URL.Path)
				json.NewEncoder(w).Encode(tc.response)
			}))
			defer srv.Close()

			result, err := p.VerifyPayment(context.Background(), "GBP17000000000001")
			require.NoError(t, err)
			assert.Equal(t, tc.verified, result.Verified)
			if !tc.verified {
				assert.NotEmpty(t, result.Err)
			}
		})
	}
}

func TestGBPrimePayVerifyAmountInSatang(t *testing.T) {
	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "paid", "amount": "45900.00"})
	}))
	defer srv.Close()

	result, err := p.VerifyPayment(context.Background(), "GBP17000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(4590000), result.Amount)
}

func TestGBPrimePayVerifyIdempotent(t *testing.T) {
	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	}))
	defer srv.Close()

	first, err := p.VerifyPayment(context.Background(), "GBP1")
	require.NoError(t, err)
	second, err := p.VerifyPayment(context.Background(), "GBP1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGBPrimePayVerifyTransportError(t *testing.T) {
	p, srv := newGBTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	_, err := p.VerifyPayment(context.Background(), "GBP1")
	assert.Error(t, err)
}
