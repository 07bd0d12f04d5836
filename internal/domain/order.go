package domain

import "time"

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

func (m ShippingMethod) Label() string {
	if m == ShippingExpress {
		return "express shipping"
	}
	return "standard shipping"
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentCard           PaymentMethod = "card"
	PaymentBank           PaymentMethod = "bank"
)

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCashOnDelivery:
		return "cash on delivery"
	case PaymentCard:
		return "card"
	case PaymentBank:
		return "bank transfer"
	}
	return string(p)
}

// Available reports whether the method can currently be selected at checkout.
// Card payments ship disabled.
func (p PaymentMethod) Available() bool {
	switch p {
	case PaymentCashOnDelivery, PaymentBank:
		return true
	}
	return false
}

// CustomerInfo carries the checkout form fields. Email and Notes are
// optional; everything else must be non-blank before submission.
type CustomerInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Wilaya   string `json:"wilaya"`
	Commune  string `json:"commune"`
	Notes    string `json:"notes,omitempty"`
}

// OrderDraft is the checkout-time staging entity: form state plus a snapshot
// of the cart lines at submission time. Constructed fresh per attempt and
// never persisted on its own.
type OrderDraft struct {
	Customer CustomerInfo
	Payment  PaymentMethod
	Shipping ShippingMethod
	Lines    []CartLine
}

const (
	PaymentStatusPending  = "pending"
	DeliveryStatusPending = "pending"
)

// Order is the durable record written on a successful submission. The core
// writes it once and never reads it back.
type Order struct {
	OrderID        string
	TotalAmount    float64
	PaymentStatus  string
	DeliveryStatus string
	Notes          string
	CreatedAt      time.Time
}
