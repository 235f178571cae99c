package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"phonemall-payments/internal/dto"
	"phonemall-payments/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	checkoutService service.CheckoutService
	invoiceService  service.InvoiceService
}

func NewPaymentHandler(checkoutService service.CheckoutService, invoiceService service.InvoiceService) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		invoiceService:  invoiceService,
	}
}

func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	origin := c.Request().Header.Get("Origin")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		userID = "guest"
	}
	email, _ := c.Get("user_email").(string)

	result, err := h.checkoutService.CreateCheckout(ctx, &service.CheckoutInput{
		UserID:        userID,
		CustomerEmail: email,
		Origin:        origin,
		CartItems:     req.CartItems,
		PaymentMethod: req.PaymentMethod,
		Channel:       req.Channel,
	})
	if err != nil {
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		log.Println("create checkout:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrProductUnavailable) ||
		errors.Is(err, service.ErrPriceMismatch) ||
		errors.Is(err, service.ErrBadQuantity)
}

// VerifyPayment always answers 200; the client distinguishes "call failed"
// from "payment not yet confirmed" by the body. Only a missing session id is
// a 400.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil || req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, dto.VerifyResponse{
			Verified: false,
			Error:    "Session ID required",
		})
	}

	return c.JSON(http.StatusOK, h.checkoutService.VerifyPayment(ctx, req.SessionID))
}

// PaymentWebhook accepts the gateway postback as JSON or form data.
func (h *PaymentHandler) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	payload := parseWebhookBody(c.Request().Header.Get("Content-Type"), body)

	if err := h.checkoutService.HandleWebhook(ctx, payload, body); err != nil {
		if errors.Is(err, service.ErrMissingReference) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing reference number"})
		}
		log.Println("payment webhook:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Webhook processing failed"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Webhook received successfully",
	})
}

// parseWebhookBody tries JSON first, then URL-encoded form data, mirroring
// what the legacy gateway actually sends.
func parseWebhookBody(contentType string, body []byte) map[string]string {
	payload := map[string]string{}

	if strings.Contains(contentType, "application/json") || json.Valid(body) {
		var raw map[string]any
		if err := json.Unmarshal(body, &raw); err == nil {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					payload[k] = s
				} else if v != nil {
					b, _ := json.Marshal(v)
					payload[k] = string(b)
				}
			}
			return payload
		}
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return payload
	}
	for k := range values {
		payload[k] = values.Get(k)
	}
	return payload
}

func (h *PaymentHandler) SendInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SendInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.invoiceService.SendInvoice(ctx, &req); err != nil {
		if strings.Contains(err.Error(), "missing required fields") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		}
		log.Println("send invoice:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send invoice"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Invoice sent successfully",
	})
}
