package public

import (
	"strconv"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart returns the cart with priced totals. A coupon query parameter is
// quoted against the subtotal without consuming a use.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	detail, err := h.CartService.GetCart(uid, c.Query("coupon"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, detail)
}

// AddCartItemRequest is the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddCartItem puts one more unit of a product in the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	item, err := h.CartService.AddItem(uid, req.ProductID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": item.ProductID, "quantity": item.Quantity})
}

// UpdateCartItemRequest is the quantity update payload.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem sets the quantity of one cart line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CartService.UpdateQuantity(uid, uint(productID), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// RemoveCartItem drops one line from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CartService.RemoveItem(uid, uint(productID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}
