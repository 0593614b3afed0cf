package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gift-registry/internal/api/dto"
	"github.com/spec-kit/gift-registry/internal/service"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// GiftsHandler exposes the catalog endpoints.
type GiftsHandler struct {
	gifts *service.GiftService
}

// NewGiftsHandler constructs handler.
func NewGiftsHandler(giftService *service.GiftService) *GiftsHandler {
	return &GiftsHandler{gifts: giftService}
}

// List handles GET /gifts.
func (h *GiftsHandler) List(c *fiber.Ctx) error {
	views, err := h.gifts.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.GiftResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NewGiftResponse(&views[i].Gift, views[i].PurchasedBy))
	}
	return c.JSON(items)
}

// Get handles GET /gifts/:id.
func (h *GiftsHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	view, err := h.gifts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGiftResponse(&view.Gift, view.PurchasedBy))
}

// Create handles POST /gifts?userId=.
func (h *GiftsHandler) Create(c *fiber.Ctx) error {
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	var req dto.CreateGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.ImageURL == "" {
		return apperrors.NewValidationError("name and imageUrl are required")
	}

	gift, err := h.gifts.Create(c.UserContext(), actorID, service.CreateGiftInput{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		AveragePrice:    req.AveragePrice,
		LinkURL:         req.LinkURL,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewGiftResponse(gift, ""))
}

// Update handles PUT /gifts/:id?userId=.
func (h *GiftsHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	var req dto.UpdateGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	gift, err := h.gifts.Update(c.UserContext(), actorID, id, service.UpdateGiftInput{
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		AveragePrice:    req.AveragePrice,
		LinkURL:         req.LinkURL,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGiftResponse(gift, ""))
}

// Delete handles DELETE /gifts/:id?userId=.
func (h *GiftsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	if err := h.gifts.Delete(c.UserContext(), actorID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Purchase handles POST /gifts/:id/purchase.
func (h *GiftsHandler) Purchase(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	var req dto.PurchaseGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.UserID == 0 {
		return apperrors.NewValidationError("userId is required")
	}

	if err := h.gifts.Purchase(c.UserContext(), id, service.PurchaseInput{
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Unpurchase handles POST /gifts/:id/unpurchase?userId=.
func (h *GiftsHandler) Unpurchase(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	if err := h.gifts.Unpurchase(c.UserContext(), id, actorID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
