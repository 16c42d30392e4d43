package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"framestudio/internal/models"
)

// ZoneLookup resolves delivery zones by name.
type ZoneLookup interface {
	GetDeliveryZone(name string) (*models.DeliveryZone, bool)
}

// OrderNotifier is told about every placed order. Failures are logged only.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, c *models.Confirmation) error
}

// CheckoutState is the screen a visitor sees at checkout.
type CheckoutState string

const (
	CheckoutEmpty  CheckoutState = "empty"
	CheckoutOpen   CheckoutState = "open"
	CheckoutPlaced CheckoutState = "placed"
)

// Checkout validates the order form, prices delivery and performs the mock
// order placement for one cart. Access is serialized by the owning session.
type Checkout struct {
	cart     *Cart
	zones    ZoneLookup
	notifier OrderNotifier
	logger   *zap.Logger
	now      func() time.Time

	confirmation *models.Confirmation
}

func NewCheckout(cart *Cart, zones ZoneLookup, notifier OrderNotifier, logger *zap.Logger) *Checkout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checkout{
		cart:     cart,
		zones:    zones,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate checks every required field and returns one message per failure.
// An empty payment method is allowed and defaults to Khalti.
func Validate(form models.OrderForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "Address is required"
	}
	if form.PaymentMethod != "" && !form.PaymentMethod.Valid() {
		errs["paymentMethod"] = "Choose a payment method"
	}
	return errs
}

// DeliveryFee returns the fee of the named zone, or 0 for an unknown zone.
func (co *Checkout) DeliveryFee(zone string) int64 {
	if z, ok := co.zones.GetDeliveryZone(zone); ok {
		return z.Fee
	}
	return 0
}

// GrandTotal is the cart subtotal plus the delivery fee of zone.
func (co *Checkout) GrandTotal(zone string) int64 {
	return co.cart.TotalPrice() + co.DeliveryFee(zone)
}

// Quote returns the price breakdown for zone.
func (co *Checkout) Quote(zone string) models.Quote {
	q := models.Quote{Zone: zone, Subtotal: co.cart.TotalPrice()}
	if z, ok := co.zones.GetDeliveryZone(zone); ok {
		q.DeliveryFee = z.Fee
		q.Days = z.Days
	}
	q.GrandTotal = q.Subtotal + q.DeliveryFee
	return q
}

// State is placed while the last confirmation is showing. Adding a new line
// to the cart reopens checkout for that cart.
func (co *Checkout) State() CheckoutState {
	if co.cart.TotalItems() > 0 {
		return CheckoutOpen
	}
	if co.confirmation != nil {
		return CheckoutPlaced
	}
	return CheckoutEmpty
}

// Confirmation returns the placed order, if any.
func (co *Checkout) Confirmation() *models.Confirmation {
	return co.confirmation
}

// PlaceOrder validates form and, on success, empties the cart and records
// the confirmation. A validation failure leaves the cart untouched.
func (co *Checkout) PlaceOrder(ctx context.Context, form models.OrderForm) (*models.Confirmation, error) {
	switch co.State() {
	case CheckoutPlaced:
		return nil, ErrOrderPlaced
	case CheckoutEmpty:
		return nil, ErrEmptyCart
	}

	if errs := Validate(form); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	form = normalize(form)
	items, subtotal := co.cart.drain()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	c := &models.Confirmation{
		OrderNumber:    generateOrderNumber(co.now()),
		PlacedAt:       co.now(),
		Form:           form,
		Items:          items,
		Subtotal:       subtotal,
		DeliveryWindow: models.DefaultDeliveryWindow,
	}
	if z, ok := co.zones.GetDeliveryZone(form.Zone); ok {
		c.DeliveryFee = z.Fee
		c.DeliveryWindow = z.Days
	}
	c.GrandTotal = c.Subtotal + c.DeliveryFee
	co.confirmation = c

	co.logger.Info("order placed",
		zap.String("order_number", c.OrderNumber),
		zap.Int("items", len(c.Items)),
		zap.Int64("grand_total", c.GrandTotal),
		zap.String("zone", form.Zone),
		zap.String("payment_method", string(form.PaymentMethod)))

	if co.notifier != nil {
		go func(c models.Confirmation) {
			if err := co.notifier.SendOrderConfirmation(context.WithoutCancel(ctx), &c); err != nil {
				co.logger.Warn("order confirmation not sent", zap.String("order_number", c.OrderNumber), zap.Error(err))
			}
		}(*c)
	}
	return c, nil
}

// StartOver leaves the placed state so another order can be made.
func (co *Checkout) StartOver() {
	co.confirmation = nil
}

func normalize(form models.OrderForm) models.OrderForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.Address = strings.TrimSpace(form.Address)
	form.City = strings.TrimSpace(form.City)
	form.Notes = strings.TrimSpace(form.Notes)
	if form.City == "" {
		form.City = models.DefaultCity
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = models.PaymentKhalti
	}
	return form
}

func generateOrderNumber(t time.Time) string {
	return fmt.Sprintf("FS-%s-%s", t.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}
