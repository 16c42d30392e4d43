package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"framestudio/internal/models"
	"framestudio/internal/services"
)

type checkoutView struct {
	State          services.CheckoutState `json:"state"`
	Cart           models.CartView        `json:"cart"`
	Quote          models.Quote           `json:"quote"`
	FormattedTotal string                 `json:"formattedGrandTotal"`
	Defaults       models.OrderForm       `json:"defaults"`
	Zones          []models.DeliveryZone  `json:"zones"`
	PaymentMethods []models.PaymentOption `json:"paymentMethods"`
	Confirmation   *models.Confirmation   `json:"confirmation,omitempty"`
}

// GetCheckout returns everything the checkout screen needs. ?zone= selects
// the zone used for the quote.
func (h *Handler) GetCheckout(c *gin.Context) {
	zone := c.DefaultQuery("zone", models.DefaultZone)

	var view checkoutView
	_ = session(c).Do(func(s *services.Session) error {
		view = checkoutView{
			State:          s.Checkout.State(),
			Cart:           s.Cart.View(),
			Quote:          s.Checkout.Quote(zone),
			Defaults:       models.DefaultOrderForm(),
			Zones:          h.catalog.GetDeliveryZones(),
			PaymentMethods: models.PaymentMethods,
		}
		if view.State == services.CheckoutPlaced {
			view.Confirmation = s.Checkout.Confirmation()
		}
		return nil
	})
	view.FormattedTotal = models.FormatPrice(view.Quote.GrandTotal)
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// PlaceOrder accepts the order form as JSON or as form fields.
func (h *Handler) PlaceOrder(c *gin.Context) {
	form := models.DefaultOrderForm()
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "Invalid order form")
		return
	}
	if form.Zone == "" {
		form.Zone = models.DefaultZone
	}

	var confirmation *models.Confirmation
	err := session(c).Do(func(s *services.Session) error {
		var err error
		confirmation, err = s.Checkout.PlaceOrder(c.Request.Context(), form)
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":             true,
		"confirmation":        confirmation,
		"formattedGrandTotal": models.FormatPrice(confirmation.GrandTotal),
	})
}

// StartOver leaves the confirmation screen so a new order can begin.
func (h *Handler) StartOver(c *gin.Context) {
	var state services.CheckoutState
	_ = session(c).Do(func(s *services.Session) error {
		s.Checkout.StartOver()
		s.Builder.Reset()
		state = s.Checkout.State()
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// ReceiptPage renders the placed order as a printable page.
func (h *Handler) ReceiptPage(c *gin.Context) {
	var confirmation *models.Confirmation
	_ = session(c).Do(func(s *services.Session) error {
		confirmation = s.Checkout.Confirmation()
		return nil
	})
	if confirmation == nil {
		c.HTML(http.StatusNotFound, "receipt_missing.html", gin.H{"title": "No order yet"})
		return
	}
	c.HTML(http.StatusOK, "receipt.html", gin.H{
		"title":        "Order " + confirmation.OrderNumber,
		"confirmation": confirmation,
	})
}
