package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"phonemall-payments/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mailer delivers a rendered invoice. The default implementation only logs;
// deployments plug in a real email gateway.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	log.Printf("invoice email to=%s subject=%q (%d bytes)", to, subject, len(htmlBody))
	return nil
}

type InvoiceService interface {
	SendInvoice(ctx context.Context, req *dto.SendInvoiceRequest) error
}

type invoiceServiceImpl struct {
	mailer Mailer
}

func NewInvoiceService(mailer Mailer) InvoiceService {
	return &invoiceServiceImpl{
		mailer: mailer,
	}
}

func (s *invoiceServiceImpl) SendInvoice(ctx context.Context, req *dto.SendInvoiceRequest) error {
	if req.CustomerEmail == "" || len(req.Items) == 0 || req.TotalAmount <= 0 {
		return fmt.Errorf("missing required fields")
	}

	referenceNo := req.ReferenceNo
	if referenceNo == "" {
		referenceNo = req.OrderID
	}
	if referenceNo == "" {
		referenceNo = uuid.NewString()
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = "Customer"
	}

	html, err := renderInvoice(invoiceData{
		ReferenceNo:  referenceNo,
		CustomerName: customerName,
		Email:        req.CustomerEmail,
		Items:        req.Items,
		Subtotal:     formatTHB(req.TotalAmount - req.TaxAmount),
		Tax:          formatTHB(req.TaxAmount),
		Total:        formatTHB(req.TotalAmount),
		Date:         time.Now().Format("2 January 2006"),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invoice #%s - การสั่งซื้อของคุณ", referenceNo)
	if err := s.mailer.Send(ctx, req.CustomerEmail, subject, html); err != nil {
		return fmt.Errorf("send invoice email: %w", err)
	}
	return nil
}

func formatTHB(baht float64) string {
	return "฿" + decimal.NewFromFloat(baht).StringFixed(2)
}

type invoiceData struct {
	ReferenceNo  string
	CustomerName string
	Email        string
	Items        []dto.InvoiceItem
	Subtotal     string
	Tax          string
	Total        string
	Date         string
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"thb": formatTHB,
	"line": func(item dto.InvoiceItem) string {
		return formatTHB(item.UnitPrice * float64(item.Quantity))
	},
}).Parse(`<!DOCTYPE html>
<html lang="th">
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: 'Segoe UI', Tahoma, sans-serif; color: #333; max-width: 640px; margin: 0 auto; padding: 24px; }
    .header { border-bottom: 3px solid #667eea; padding-bottom: 16px; margin-bottom: 24px; }
    .header h1 { color: #667eea; margin: 0; }
    table { width: 100%; border-collapse: collapse; margin: 16px 0; }
    th, td { text-align: left; padding: 10px; border-bottom: 1px solid #e0e0e0; }
    th { background: #f8f9fa; }
    td.num, th.num { text-align: right; }
    .totals td { border: none; padding: 4px 10px; }
    .totals .grand { font-size: 18px; font-weight: bold; color: #667eea; }
    .footer { margin-top: 32px; color: #999; font-size: 12px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>ใบแจ้งหนี้ / Invoice</h1>
    <p>เลขที่อ้างอิง: <strong>{{.ReferenceNo}}</strong><br>วันที่: {{.Date}}</p>
  </div>
  <p>เรียน {{.CustomerName}} ({{.Email}})</p>
  <table>
    <tr><th>รายการ</th><th class="num">จำนวน</th><th class="num">ราคาต่อหน่วย</th><th class="num">รวม</th></tr>
    {{range .Items}}<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{thb .UnitPrice}}</td><td class="num">{{line .}}</td></tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td></td><td class="num">ยอดรวม:</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td></td><td class="num">ภาษี:</td><td class="num">{{.Tax}}</td></tr>
    <tr><td></td><td class="num grand">ยอดสุทธิ:</td><td class="num grand">{{.Total}}</td></tr>
  </table>
  <div class="footer">
    <p>ขอบคุณที่ใช้บริการ / Thank you for your purchase</p>
  </div>
</body>
</html>`))

func renderInvoice(data invoiceData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}
