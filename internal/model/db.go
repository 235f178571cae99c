package model

import "time"

type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
)

// Product is the trusted catalog record checkout prices are validated
// against. Price is in satang.
type Product struct {
	ID          string        `gorm:"primaryKey;size:64;not null"`
	Name        string        `gorm:"size:128;not null"`
	Description string        `gorm:"size:512"`
	Brand       string        `gorm:"size:64;index"`
	Condition   string        `gorm:"size:32"` // new, used, refurbished
	Storage     string        `gorm:"size:32"`
	Color       string        `gorm:"size:64"`
	Price       int64         `gorm:"not null"`
	Currency    string        `gorm:"size:8;not null"`
	ImageURL    string        `gorm:"size:512"`
	Status      ProductStatus `gorm:"size:16;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Order records one checkout attempt, keyed by the provider's reference
// number. Amount is the authoritative total in satang.
type Order struct {
	ReferenceNo   string `gorm:"primaryKey;size:64;not null"` // provider session id
	Provider      string `gorm:"size:32;index;not null"`
	UserID        string `gorm:"size:64;index"` // "guest" for unauthenticated checkout
	CustomerEmail string `gorm:"size:128"`
	Status        string `gorm:"size:32;index;not null"` // CREATED, PAID
	Amount        int64  `gorm:"not null"`
	Currency      string `gorm:"size:8;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.reference_no
	OrderReference string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string `gorm:"index;not null"`
	Quantity  int64  `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"` // satang
	Currency  string `gorm:"size:8;not null"`
	CreatedAt time.Time
}

// WebhookEvent stores one gateway postback so replays are no-ops.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	ReferenceNo string `gorm:"size:64;index"`
	Status      string `gorm:"size:32"`
	RawPayload  string `gorm:"type:text"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
