package server

import (
	"context"

	"phonemall-payments/internal/handler"
	authmw "phonemall-payments/internal/middleware"
	"phonemall-payments/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	productHandler *handler.ProductHandler
	jwtSecret      string
}

func NewServer(
	checkoutService service.CheckoutService,
	invoiceService service.InvoiceService,
	productHandler *handler.ProductHandler,
	jwtSecret string,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(checkoutService, invoiceService),
		productHandler: productHandler,
		jwtSecret:      jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.productHandler.ListProducts)

	// -------- checkout / verification --------
	api.POST("/checkout", s.paymentHandler.CreateCheckout, authmw.OptionalAuth(s.jwtSecret))
	api.POST("/checkout/verify", s.paymentHandler.VerifyPayment)

	// -------- gateway callbacks --------
	api.POST("/payments/webhook", s.paymentHandler.PaymentWebhook)

	api.POST("/invoices/send", s.paymentHandler.SendInvoice)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
