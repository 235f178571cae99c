package dto

type CartItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // THB major units, revalidated server-side
	Quantity  int64   `json:"quantity"`
	Brand     string  `json:"brand,omitempty"`
	Condition string  `json:"condition,omitempty"`
	Image     string  `json:"image,omitempty"`
}

type CheckoutRequest struct {
	CartItems     []CartItem `json:"cartItems"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Channel       string     `json:"channel,omitempty"`
}

type CheckoutResponse struct {
	URL          string `json:"url"`
	SessionID    string `json:"sessionId"`
	Presentation string `json:"presentation"`
}

type VerifyRequest struct {
	SessionID string `json:"sessionId"`
}

type VerifyResponse struct {
	Verified      bool   `json:"verified"`
	Amount        int64  `json:"amount,omitempty"`
	Status        string `json:"status,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Error         string `json:"error,omitempty"`
}

type InvoiceItem struct {
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"` // THB
}

type SendInvoiceRequest struct {
	OrderID       string        `json:"orderId,omitempty"`
	ReferenceNo   string        `json:"referenceNo,omitempty"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerName  string        `json:"customerName,omitempty"`
	Items         []InvoiceItem `json:"items"`
	TotalAmount   float64       `json:"totalAmount"` // THB
	TaxAmount     float64       `json:"taxAmount,omitempty"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Storage     string  `json:"storage,omitempty"`
	Color       string  `json:"color,omitempty"`
	Price       float64 `json:"price"` // THB
	Image       string  `json:"image,omitempty"`
}
