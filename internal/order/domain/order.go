package domain

import (
	"context"
	"errors"
	"time"

	cartdomain "github.com/machbazar/storefront/internal/cart/domain"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
)

// Order statuses
const (
	StatusPendingVerification = "pending_verification"
	StatusVerified            = "verified"
	StatusRejected            = "rejected"
	StatusExpired             = "expired"
)

// Payment methods. Mobile wallets need a transaction id for manual
// verification; cash on delivery does not.
const (
	PaymentBkash  = "bkash"
	PaymentNagad  = "nagad"
	PaymentRocket = "rocket"
	PaymentCOD    = "cod"
)

// Statuses lists every order status
var Statuses = []string{StatusPendingVerification, StatusVerified, StatusRejected, StatusExpired}

var (
	ErrNotFound          = catalogdomain.ErrNotFound
	ErrInvalidTransition = errors.New("order is not awaiting verification")
)

// Customer is the delivery contact captured at checkout
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area"`
	Notes   string `json:"notes,omitempty"`
}

// CustomerKind tags which form a CustomerRef holds
type CustomerKind string

const (
	// CustomerReference points at a returning customer by phone number; the
	// contact lives on that customer's earlier orders
	CustomerReference CustomerKind = "reference"
	// CustomerPopulated carries the full contact
	CustomerPopulated CustomerKind = "populated"
)

// CustomerRef is the customer of an order: either a Reference by phone or a
// Populated contact. Read it through a switch on Kind.
type CustomerRef struct {
	Kind     CustomerKind `json:"kind"`
	Phone    string       `json:"phone,omitempty"`
	Customer *Customer    `json:"customer,omitempty"`
}

// Reference refers to a customer by phone
func Reference(phone string) CustomerRef {
	return CustomerRef{Kind: CustomerReference, Phone: phone}
}

// Populated embeds the full contact
func Populated(c Customer) CustomerRef {
	return CustomerRef{Kind: CustomerPopulated, Customer: &c}
}

// ContactPhone returns the phone number either form identifies the customer
// by, or "" for a malformed ref
func (r CustomerRef) ContactPhone() string {
	switch r.Kind {
	case CustomerReference:
		return r.Phone
	case CustomerPopulated:
		if r.Customer != nil {
			return r.Customer.Phone
		}
	}
	return ""
}

// OrderLine is one priced cart line
type OrderLine struct {
	ProductID          string                     `json:"productId"`
	PackageID          string                     `json:"packageId,omitempty"`
	NameEn             string                     `json:"nameEn"`
	NameBn             string                     `json:"nameBn,omitempty"`
	Quantity           float64                    `json:"quantity"`
	UnitPrice          float64                    `json:"unitPrice"`
	DiscountPercentage float64                    `json:"discountPercentage"`
	Subtotal           float64                    `json:"subtotal"`
	Discount           float64                    `json:"discount"`
	Total              float64                    `json:"total"`
	SelectedOptions    cartdomain.SelectedOptions `json:"selectedOptions"`
	Components         []cartdomain.Component     `json:"components,omitempty"`
}

// Order is a checked-out cart awaiting manual payment verification
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	OrderID       string      `json:"orderId" gorm:"uniqueIndex;not null"`
	SessionID     string      `json:"-" gorm:"index"`
	Customer      CustomerRef `json:"customer" gorm:"serializer:json;type:jsonb"`
	PaymentMethod string      `json:"paymentMethod" gorm:"not null"`
	TransactionID string      `json:"transactionId,omitempty"`
	Lines         []OrderLine `json:"lines" gorm:"serializer:json;type:jsonb"`
	Subtotal      float64     `json:"subtotal"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	Status        string      `json:"status" gorm:"index;not null"`
	// Set once the stock decrement for a verified order has run
	StockApplied     bool       `json:"-" gorm:"default:false"`
	VerificationNote string     `json:"verificationNote,omitempty"`
	VerifiedBy       string     `json:"verifiedBy,omitempty"`
	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// StockLines expands the order into catalog product quantities. A package
// line contributes each component's kg times the number of packages.
func (o *Order) StockLines() []StockLine {
	var out []StockLine
	index := map[string]int{}
	add := func(productID string, kg float64) {
		if i, ok := index[productID]; ok {
			out[i].QuantityKg += kg
			return
		}
		index[productID] = len(out)
		out = append(out, StockLine{ProductID: productID, QuantityKg: kg})
	}

	for _, line := range o.Lines {
		if line.PackageID == "" {
			add(line.ProductID, line.Quantity)
			continue
		}
		for _, c := range line.Components {
			add(c.ProductID, c.QuantityKg*line.Quantity)
		}
	}
	return out
}

// StockLine is a quantity of one catalog product
type StockLine struct {
	ProductID  string
	QuantityKg float64
}

// Transition is a status change applied by an admin or the expiry job
type Transition struct {
	From string
	To   string
	Note string
	By   string
	At   time.Time
}

// OrderFilter narrows admin order listings
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OrderStats summarizes orders for the admin dashboard
type OrderStats struct {
	ByStatus        map[string]int64 `json:"byStatus"`
	TotalOrders     int64            `json:"totalOrders"`
	VerifiedRevenue float64          `json:"verifiedRevenue"`
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByOrderID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	// Transition moves an order from t.From to t.To. It returns
	// ErrInvalidTransition when the order exists in another status.
	Transition(ctx context.Context, orderID string, t Transition) error
	// ExpirePending expires mobile-payment orders still pending that were
	// created before cutoff
	ExpirePending(ctx context.Context, cutoff time.Time, at time.Time) (int64, error)
	// ApplyStockOnce flags a verified order and runs apply atomically with
	// the flag. It returns false without calling apply when the order is not
	// verified or was already flagged. When apply fails the flag is not kept.
	ApplyStockOnce(ctx context.Context, orderID string, apply func(ctx context.Context) error) (bool, error)
	// FindCustomerByPhone returns the contact of the newest populated order
	// placed with phone
	FindCustomerByPhone(ctx context.Context, phone string) (*Customer, error)
	Stats(ctx context.Context) (*OrderStats, error)
}
