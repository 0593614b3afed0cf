package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gift-registry/internal/api/dto"
	"github.com/spec-kit/gift-registry/internal/service"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// CartHandler exposes the shopping cart endpoints.
type CartHandler struct {
	cart *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cart: cartService}
}

// List handles GET /cart?userId=.
func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	entries, err := h.cart.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	items := make([]dto.CartEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewCartEntryResponse(&entries[i]))
	}
	return c.JSON(items)
}

// Add handles POST /cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.UserID == 0 || req.GiftID == 0 {
		return apperrors.NewValidationError("userId and giftId are required")
	}

	otherUsersCount, err := h.cart.Add(c.UserContext(), req.UserID, req.GiftID)
	if err != nil {
		return err
	}
	return c.JSON(dto.AddCartResponse{Success: true, OtherUsersCount: otherUsersCount})
}

// Remove handles DELETE /cart?userId=&giftId=.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	userID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	giftID, err := queryInt(c, "giftId")
	if err != nil {
		return err
	}
	if err := h.cart.Remove(c.UserContext(), userID, giftID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Check handles POST /cart/check, reporting cart candidates already
// purchased by someone else.
func (h *CartHandler) Check(c *fiber.Ctx) error {
	var req dto.CartGiftIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.UserID == 0 || req.GiftIDs == nil {
		return apperrors.NewValidationError("userId and giftIds array are required")
	}

	purchased, err := h.cart.CheckPurchased(c.UserContext(), req.UserID, *req.GiftIDs)
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckCartResponse{
		PurchasedItems:      purchased,
		HasUnavailableItems: len(purchased) > 0,
	})
}

// Others handles POST /cart/others, mapping each gift to how many other
// users hold it.
func (h *CartHandler) Others(c *fiber.Ctx) error {
	var req dto.CartGiftIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.UserID == 0 || req.GiftIDs == nil {
		return apperrors.NewValidationError("userId and giftIds array are required")
	}

	counts, err := h.cart.OthersCounts(c.UserContext(), req.UserID, *req.GiftIDs)
	if err != nil {
		return err
	}
	return c.JSON(counts)
}
