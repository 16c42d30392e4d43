package models

import "time"

// PaymentMethod identifies how the customer intends to pay.
type PaymentMethod string

const (
	PaymentKhalti PaymentMethod = "khalti"
	PaymentEsewa  PaymentMethod = "esewa"
	PaymentBank   PaymentMethod = "bank"
	PaymentCOD    PaymentMethod = "cod"
)

// PaymentMethods lists the methods offered at checkout, in display order.
var PaymentMethods = []PaymentOption{
	{ID: PaymentKhalti, Label: "Khalti"},
	{ID: PaymentEsewa, Label: "eSewa"},
	{ID: PaymentBank, Label: "Bank Transfer"},
	{ID: PaymentCOD, Label: "Cash on Delivery"},
}

// Valid reports whether p is one of the offered payment methods.
func (p PaymentMethod) Valid() bool {
	for _, o := range PaymentMethods {
		if o.ID == p {
			return true
		}
	}
	return false
}

type PaymentOption struct {
	ID    PaymentMethod `json:"id"`
	Label string        `json:"label"`
}

const (
	DefaultCity           = "Kathmandu"
	DefaultZone           = "Kathmandu Valley"
	DefaultDeliveryWindow = "3-5 business days"
)

// OrderForm holds the checkout form fields.
type OrderForm struct {
	Name          string        `json:"name" form:"name"`
	Phone         string        `json:"phone" form:"phone"`
	Email         string        `json:"email" form:"email"`
	Address       string        `json:"address" form:"address"`
	City          string        `json:"city" form:"city"`
	Zone          string        `json:"zone" form:"zone"`
	Notes         string        `json:"notes" form:"notes"`
	PaymentMethod PaymentMethod `json:"paymentMethod" form:"paymentMethod"`
}

// DefaultOrderForm returns the form as it is first shown to a customer.
func DefaultOrderForm() OrderForm {
	return OrderForm{
		City:          DefaultCity,
		Zone:          DefaultZone,
		PaymentMethod: PaymentKhalti,
	}
}

// Confirmation is the acknowledgment returned after an order is placed.
// It is not stored anywhere beyond the visitor's session.
type Confirmation struct {
	OrderNumber    string         `json:"orderNumber"`
	PlacedAt       time.Time      `json:"placedAt"`
	Form           OrderForm      `json:"form"`
	Items          []CartLineItem `json:"items"`
	Subtotal       int64          `json:"subtotal"`
	DeliveryFee    int64          `json:"deliveryFee"`
	GrandTotal     int64          `json:"grandTotal"`
	DeliveryWindow string         `json:"deliveryWindow"`
}

// Quote is the price breakdown shown next to the checkout form.
type Quote struct {
	Zone        string `json:"zone"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"deliveryFee"`
	GrandTotal  int64  `json:"grandTotal"`
	Days        string `json:"days,omitempty"`
}
