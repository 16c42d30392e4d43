package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framestudio/internal/models"
)

func newTestCheckout(notifier OrderNotifier) (*Cart, *Checkout) {
	cart := NewCart(nil)
	return cart, NewCheckout(cart, testZones, notifier, nil)
}

func TestValidate(t *testing.T) {
	errs := Validate(validForm("Pokhara"))
	assert.Empty(t, errs)

	form := validForm("Pokhara")
	form.Name = ""
	errs = Validate(form)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Name is required", errs["name"])

	errs = Validate(models.OrderForm{Name: "  ", Phone: "\t"})
	assert.Equal(t, FieldErrors{
		"name":    "Name is required",
		"phone":   "Phone is required",
		"address": "Address is required",
	}, errs)

	form = validForm("Pokhara")
	form.PaymentMethod = "paypal"
	assert.Equal(t, FieldErrors{"paymentMethod": "Choose a payment method"}, Validate(form))
}

func TestCheckout_DeliveryFee(t *testing.T) {
	cart, co := newTestCheckout(nil)
	cart.AddItem(lineItem(size16x20, models.NoMat))

	assert.Equal(t, int64(150), co.DeliveryFee("Pokhara"))
	assert.Equal(t, int64(0), co.DeliveryFee("Kathmandu Valley"))
	assert.Equal(t, int64(0), co.DeliveryFee("Atlantis"))
	assert.Equal(t, int64(4650), co.GrandTotal("Pokhara"))
}

func TestCheckout_Quote(t *testing.T) {
	cart, co := newTestCheckout(nil)
	cart.AddItem(lineItem(size16x20, models.NoMat))

	q := co.Quote("Pokhara")
	assert.Equal(t, models.Quote{Zone: "Pokhara", Subtotal: 4500, DeliveryFee: 150, GrandTotal: 4650, Days: "Pokhara days"}, q)

	q = co.Quote("Atlantis")
	assert.Equal(t, int64(4500), q.GrandTotal)
	assert.Empty(t, q.Days)
}

func TestCheckout_State(t *testing.T) {
	cart, co := newTestCheckout(nil)
	assert.Equal(t, CheckoutEmpty, co.State())

	cart.AddItem(lineItem(size8x12, models.NoMat))
	assert.Equal(t, CheckoutOpen, co.State())

	_, err := co.PlaceOrder(context.Background(), validForm("Pokhara"))
	require.NoError(t, err)
	assert.Equal(t, CheckoutPlaced, co.State())

	co.StartOver()
	assert.Equal(t, CheckoutEmpty, co.State())
	assert.Nil(t, co.Confirmation())
}

func TestCheckout_PlaceOrderEmptyCart(t *testing.T) {
	_, co := newTestCheckout(nil)
	_, err := co.PlaceOrder(context.Background(), validForm("Pokhara"))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_PlaceOrderInvalidKeepsCart(t *testing.T) {
	cart, co := newTestCheckout(nil)
	cart.AddItem(lineItem(size8x12, models.NoMat))

	form := validForm("Pokhara")
	form.Phone = ""
	_, err := co.PlaceOrder(context.Background(), form)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldErrors{"phone": "Phone is required"}, verr.Fields)
	assert.Contains(t, err.Error(), "Phone is required")
	assert.Equal(t, 1, cart.TotalItems())
	assert.Equal(t, CheckoutOpen, co.State())
}

func TestCheckout_EndToEnd(t *testing.T) {
	notifier := newRecordingNotifier()
	cart, co := newTestCheckout(notifier)
	co.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }

	cart.AddItem(lineItem(size8x12, models.NoMat))
	cart.AddItem(lineItem(size12x16, whiteMat))

	form := validForm("Other Cities")
	form.City = ""
	form.Name = "  Ram  "
	c, err := co.PlaceOrder(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, int64(5800), c.Subtotal)
	assert.Equal(t, int64(200), c.DeliveryFee)
	assert.Equal(t, int64(6000), c.GrandTotal)
	assert.Len(t, c.Items, 2)
	assert.Equal(t, "Other Cities days", c.DeliveryWindow)
	assert.Equal(t, "Ram", c.Form.Name)
	assert.Equal(t, models.DefaultCity, c.Form.City)
	assert.Regexp(t, `^FS-20240309-[0-9A-F]{8}$`, c.OrderNumber)

	assert.Equal(t, 0, cart.TotalItems())
	assert.Same(t, c, co.Confirmation())

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	assert.Equal(t, []string{c.OrderNumber}, notifier.orders)

	_, err = co.PlaceOrder(context.Background(), form)
	assert.ErrorIs(t, err, ErrOrderPlaced)
}

func TestCheckout_UnknownZoneUsesDefaultWindow(t *testing.T) {
	cart, co := newTestCheckout(nil)
	cart.AddItem(lineItem(size8x12, models.NoMat))

	c, err := co.PlaceOrder(context.Background(), validForm("Atlantis"))
	require.NoError(t, err)
	assert.Zero(t, c.DeliveryFee)
	assert.Equal(t, models.DefaultDeliveryWindow, c.DeliveryWindow)
	assert.Equal(t, int64(2000), c.GrandTotal)
}

func TestCheckout_NotifierFailureDoesNotFailOrder(t *testing.T) {
	notifier := newRecordingNotifier()
	notifier.err = errors.New("smtp down")
	cart, co := newTestCheckout(notifier)
	cart.AddItem(lineItem(size8x12, models.NoMat))

	_, err := co.PlaceOrder(context.Background(), validForm("Pokhara"))
	require.NoError(t, err)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	assert.Equal(t, CheckoutPlaced, co.State())
}

func TestCheckout_NewItemReopensAfterPlacement(t *testing.T) {
	cart, co := newTestCheckout(nil)
	cart.AddItem(lineItem(size8x12, models.NoMat))

	first, err := co.PlaceOrder(context.Background(), validForm("Pokhara"))
	require.NoError(t, err)
	assert.Equal(t, CheckoutPlaced, co.State())

	cart.AddItem(lineItem(size16x20, models.NoMat))
	assert.Equal(t, CheckoutOpen, co.State())
	assert.Same(t, first, co.Confirmation())

	second, err := co.PlaceOrder(context.Background(), validForm("Pokhara"))
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Equal(t, int64(4650), second.GrandTotal)
	assert.Equal(t, CheckoutPlaced, co.State())
}
