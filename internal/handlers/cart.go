// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type CartHandler struct {
	cartService     *services.CartService
	wishlistService *services.WishlistService
}

func NewCartHandler(cartService *services.CartService, wishlistService *services.WishlistService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		wishlistService: wishlistService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cart, err := h.cartService.GetCart(actor.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	cart, err := h.cartService.AddItem(actor.ID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /cart/items/:gameId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(actor.ID, gameID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart/items/:gameId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	cart, err := h.cartService.RemoveItem(actor.ID, gameID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cart, err := h.cartService.ClearCart(actor.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// GET /wishlist
func (h *CartHandler) GetWishlist(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	wishlist, err := h.wishlistService.GetWishlist(actor.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, wishlist)
}

// POST /wishlist/:gameId
func (h *CartHandler) AddToWishlist(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	wishlist, err := h.wishlistService.AddGame(actor.ID, gameID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, wishlist)
}

// DELETE /wishlist
func (h *CartHandler) ClearWishlist(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	wishlist, err := h.wishlistService.ClearWishlist(actor.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, wishlist)
}

// DELETE /wishlist/:gameId
func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	wishlist, err := h.wishlistService.RemoveGame(actor.ID, gameID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, wishlist)
}
