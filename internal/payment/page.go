package payment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
)

// Adapters deliver gateway-specific UI as a complete HTML document encoded
// into a data URL, so the client renders every channel the same way without
// an extra network hop.

func dataURL(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

type formField struct {
	Name  string
	Value string
}

// linkField carries app deep links and data/image URLs past html/template's
// URL scheme filter; every value is built server-side from configuration.
type linkField struct {
	Name string
	URL  template.URL
}

type autoSubmitFormData struct {
	Title     string
	ActionURL string
	Fields    []formField
}

type qrPageData struct {
	Title       string
	QRImage     template.URL
	Amount      string // "฿45900.00"
	ReferenceNo string
	OrderNo     string
	ExpireTime  string
}

type manualPageData struct {
	ReferenceNo   string
	Amount        string
	QRImageURL    template.URL
	BankName      string
	AccountNumber string
	AccountName   string
	SuccessURL    string
	DeepLinks     []linkField
}

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "autoSubmitForm"}}<!DOCTYPE html>
<html>
<head>
  <title>{{.Title}}</title>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; display: flex; flex-direction: column; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
    .loading { text-align: center; background: white; padding: 40px; border-radius: 20px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); }
    .spinner { border: 4px solid #f3f3f3; border-top: 4px solid #667eea; border-radius: 50%; width: 50px; height: 50px; animation: spin 1s linear infinite; margin: 20px auto; }
    @keyframes spin { 0% { transform: rotate(0deg); } 100% { transform: rotate(360deg); } }
    p { color: #666; margin-top: 20px; }
  </style>
</head>
<body>
  <div class="loading">
    <div class="spinner"></div>
    <p>กำลังเปลี่ยนเส้นทางไปยังหน้าชำระเงิน...</p>
    <p style="font-size: 12px; color: #999;">Redirecting to payment page...</p>
  </div>
  <form id="paymentForm" method="post" action="{{.ActionURL}}">
    {{range .Fields}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">
    {{end}}
  </form>
  <script>
    window.onload = function() {
      document.getElementById('paymentForm').submit();
    };
  </script>
</body>
</html>{{end}}

{{define "qrPage"}}<!DOCTYPE html>
<html>
<head>
  <title>{{.Title}}</title>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; display: flex; flex-direction: column; align-items: center; justify-content: center; min-height: 100vh; margin: 0; padding: 20px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
    .container { background: white; padding: 40px; border-radius: 20px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); text-align: center; max-width: 400px; width: 100%; }
    h1 { color: #333; margin-bottom: 10px; font-size: 24px; }
    .amount { font-size: 32px; font-weight: bold; color: #667eea; margin: 20px 0; }
    .qr-code { margin: 30px 0; padding: 20px; background: #f8f9fa; border-radius: 10px; }
    .qr-code img { max-width: 100%; height: auto; border-radius: 8px; }
    .info { margin: 20px 0; color: #666; font-size: 14px; }
    .reference { font-family: monospace; background: #f0f0f0; padding: 8px 12px; border-radius: 6px; margin: 10px 0; }
    .expire { color: #e74c3c; font-weight: bold; margin-top: 15px; }
    .instruction { color: #999; font-size: 12px; margin-top: 20px; line-height: 1.6; }
  </style>
</head>
<body>
  <div class="container">
    <h1>สแกน QR Code เพื่อชำระเงิน</h1>
    <div class="amount">{{.Amount}}</div>
    <div class="qr-code">
      <img src="{{.QRImage}}" alt="PromptPay QR Code">
    </div>
    <div class="info">
      <p><strong>Reference No.:</strong></p>
      <p class="reference">{{.ReferenceNo}}</p>
      {{if .OrderNo}}<p>Order No.: {{.OrderNo}}</p>{{end}}
      {{if .ExpireTime}}<p class="expire">หมดอายุ: {{.ExpireTime}}</p>{{end}}
    </div>
    <p class="instruction">
      กรุณาเปิดแอปธนาคารของคุณ<br>
      และสแกน QR Code เพื่อชำระเงิน
    </p>
  </div>
</body>
</html>{{end}}

{{define "manualPage"}}<!DOCTYPE html>
<html lang="th">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>ชำระเงิน - {{.ReferenceNo}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; padding: 20px; }
    .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 20px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); overflow: hidden; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; }
    .header .amount { font-size: 36px; font-weight: bold; margin-top: 10px; }
    .content { padding: 30px; }
    .section { margin-bottom: 30px; }
    .section-title { font-size: 18px; font-weight: bold; color: #333; margin-bottom: 15px; }
    .qr-container { text-align: center; padding: 20px; background: #f8f9fa; border-radius: 10px; }
    .qr-code { width: 250px; height: 250px; margin: 0 auto 15px; border: 5px solid white; border-radius: 10px; background: white; }
    .qr-code img { width: 100%; height: 100%; object-fit: contain; }
    .bank-info { background: #f8f9fa; padding: 20px; border-radius: 10px; }
    .bank-info-item { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #e0e0e0; }
    .bank-info-item:last-child { border-bottom: none; }
    .bank-info-label { font-weight: bold; color: #666; }
    .bank-info-value { color: #333; font-family: monospace; font-size: 16px; }
    .bank-links { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 10px; margin-top: 15px; }
    .bank-link { display: block; padding: 12px; background: #667eea; color: white; text-align: center; text-decoration: none; border-radius: 8px; font-weight: bold; }
    .reference { background: #fff3cd; padding: 15px; border-radius: 8px; text-align: center; margin-bottom: 20px; }
    .reference-value { font-size: 18px; font-weight: bold; color: #856404; font-family: monospace; }
    .instructions { background: #e7f3ff; padding: 15px; border-radius: 8px; color: #004085; font-size: 14px; line-height: 1.6; }
    .instructions ul { margin-left: 20px; margin-top: 10px; }
    .button { display: block; width: 100%; padding: 15px; background: #28a745; color: white; text-align: center; border-radius: 8px; font-weight: bold; font-size: 16px; margin-top: 20px; border: none; cursor: pointer; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>ชำระเงิน</h1>
      <div class="amount">{{.Amount}}</div>
    </div>
    <div class="content">
      <div class="reference">
        <div>เลขที่อ้างอิง</div>
        <div class="reference-value">{{.ReferenceNo}}</div>
      </div>
      <div class="section">
        <div class="section-title">💳 ชำระผ่าน PromptPay</div>
        <div class="qr-container">
          <div class="qr-code">
            <img src="{{.QRImageURL}}" alt="PromptPay QR Code">
          </div>
          <p style="color: #666; font-size: 14px;">สแกน QR Code ด้วยแอปธนาคารของคุณ</p>
        </div>
      </div>
      <div class="section">
        <div class="section-title">🏦 โอนเงินผ่านธนาคาร</div>
        <div class="bank-info">
          <div class="bank-info-item">
            <span class="bank-info-label">ธนาคาร:</span>
            <span class="bank-info-value">{{.BankName}}</span>
          </div>
          <div class="bank-info-item">
            <span class="bank-info-label">เลขที่บัญชี:</span>
            <span class="bank-info-value">{{.AccountNumber}}</span>
          </div>
          <div class="bank-info-item">
            <span class="bank-info-label">ชื่อบัญชี:</span>
            <span class="bank-info-value">{{.AccountName}}</span>
          </div>
          <div class="bank-info-item">
            <span class="bank-info-label">จำนวนเงิน:</span>
            <span class="bank-info-value">{{.Amount}}</span>
          </div>
        </div>
        <div class="bank-links">
          {{range .DeepLinks}}<a href="{{.URL}}" class="bank-link">{{.Name}}</a>
          {{end}}
        </div>
      </div>
      <div class="section">
        <div class="instructions">
          <strong>📋 วิธีการชำระเงิน:</strong>
          <ul>
            <li>สแกน QR Code ด้วยแอปธนาคาร หรือ</li>
            <li>โอนเงินเข้าบัญชี {{.AccountNumber}} ธนาคาร{{.BankName}}</li>
            <li>จำนวนเงิน: {{.Amount}}</li>
            <li>กรุณาแนบสลิปการโอนเงินเมื่อชำระเงินเสร็จ</li>
          </ul>
        </div>
      </div>
      <button class="button" onclick="confirmPayment()">ยืนยันการชำระเงิน</button>
    </div>
  </div>
  <script>
    function confirmPayment() {
      if (confirm('กรุณายืนยันว่าคุณได้ชำระเงินเรียบร้อยแล้ว\n\nหลังจากยืนยัน ระบบจะส่ง Invoice ไปที่อีเมลของคุณ')) {
        window.location.href = '{{.SuccessURL}}';
      }
    }
  </script>
</body>
</html>{{end}}
`))

func renderPage(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s page: %w", name, err)
	}
	return buf.String(), nil
}
