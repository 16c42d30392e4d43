package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"framestudio/internal/models"
)

// Cart holds the line items of one visitor and the drawer visibility flag.
// All mutation goes through its methods; each call is atomic.
type Cart struct {
	mu     sync.Mutex
	items  []models.CartLineItem
	isOpen bool

	newID  func() string
	now    func() time.Time
	logger *zap.Logger
}

// NewCart returns an empty, closed cart.
func NewCart(logger *zap.Logger) *Cart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cart{
		items:  []models.CartLineItem{},
		newID:  uuid.NewString,
		now:    time.Now,
		logger: logger,
	}
}

// AddItem stores a new line built from the snapshot fields of in and returns it.
// Prices are taken as given.
func (c *Cart) AddItem(in models.LineItemInput) models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := models.CartLineItem{
		CartID:        c.newID(),
		LineItemInput: in,
		AddedAt:       c.now(),
	}
	c.items = append(c.items, item)

	c.logger.Debug("cart item added",
		zap.String("cart_id", item.CartID),
		zap.String("frame_id", in.FrameID),
		zap.String("size_id", in.SizeID),
		zap.String("mat_id", in.MatID),
		zap.Int("total_items", len(c.items)))
	return item
}

// RemoveItem drops the line with the given id. Unknown ids are ignored.
func (c *Cart) RemoveItem(cartID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.CartID == cartID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			c.logger.Debug("cart item removed", zap.String("cart_id", cartID), zap.Int("total_items", len(c.items)))
			return
		}
	}
}

// UpdateItem applies upd to the line with the given id and reports whether
// the line existed. Unknown ids are a no-op.
func (c *Cart) UpdateItem(cartID string, upd models.LineItemUpdate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].CartID == cartID {
			upd.Apply(&c.items[i])
			c.logger.Debug("cart item updated", zap.String("cart_id", cartID))
			return true
		}
	}
	return false
}

// ClearCart removes every line. The drawer flag is left as it is.
func (c *Cart) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []models.CartLineItem{}
}

// ToggleCart flips the drawer visibility.
func (c *Cart) ToggleCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = !c.isOpen
}

// SetCartOpen shows or hides the drawer.
func (c *Cart) SetCartOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = open
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartLineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Item returns the line with the given id.
func (c *Cart) Item(cartID string) (models.CartLineItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.CartID == cartID {
			return item, true
		}
	}
	return models.CartLineItem{}, false
}

// IsOpen reports whether the drawer is showing.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// TotalItems counts lines; every line is one framed print.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalPrice sums price and mat price over the current lines.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

// View returns a consistent snapshot of the cart for clients.
func (c *Cart) View() models.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartLineItem, len(c.items))
	copy(items, c.items)
	total := totalOf(items)
	return models.CartView{
		Items:          items,
		IsOpen:         c.isOpen,
		TotalItems:     len(items),
		TotalPrice:     total,
		FormattedTotal: models.FormatPrice(total),
	}
}

// drain empties the cart and returns what it held, in one step.
func (c *Cart) drain() ([]models.CartLineItem, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = []models.CartLineItem{}
	return items, totalOf(items)
}

func totalOf(items []models.CartLineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
