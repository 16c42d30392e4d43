package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"framestudio/internal/models"
)

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": session(c).Cart.View()})
}

func (h *Handler) ClearCart(c *gin.Context) {
	cart := session(c).Cart
	cart.ClearCart()
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart.View()})
}

// RemoveCartItem succeeds whether or not the line exists.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	cart := session(c).Cart
	cart.RemoveItem(c.Param("cartId"))
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart.View()})
}

type updateCartItemRequest struct {
	SizeID *string `json:"sizeId"`
	MatID  *string `json:"matId"`
}

// UpdateCartItem swaps the size and/or mat of a line. Prices always come
// from the catalog.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.SizeID == nil && req.MatID == nil {
		badRequest(c, "Nothing to update")
		return
	}

	var upd models.LineItemUpdate
	if req.SizeID != nil {
		size, err := h.catalog.GetSizeByID(*req.SizeID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		upd = upd.Merge(models.SizeUpdate(*size))
	}
	if req.MatID != nil {
		mat, err := h.catalog.GetMatOptionByID(*req.MatID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		upd = upd.Merge(models.MatUpdate(*mat))
	}

	cart := session(c).Cart
	cartID := c.Param("cartId")
	updated := cart.UpdateItem(cartID, upd)
	if !updated {
		h.logger.Debug("update of unknown cart item ignored", zap.String("cart_id", cartID))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated, "cart": cart.View()})
}

func (h *Handler) ToggleCart(c *gin.Context) {
	cart := session(c).Cart
	cart.ToggleCart()
	c.JSON(http.StatusOK, gin.H{"success": true, "isOpen": cart.IsOpen()})
}

func (h *Handler) SetCartOpen(c *gin.Context) {
	var req struct {
		Open *bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Open == nil {
		badRequest(c, `Body must be {"open": true|false}`)
		return
	}
	cart := session(c).Cart
	cart.SetCartOpen(*req.Open)
	c.JSON(http.StatusOK, gin.H{"success": true, "isOpen": cart.IsOpen()})
}
