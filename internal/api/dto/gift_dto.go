package dto

import (
	"time"

	"github.com/spec-kit/gift-registry/internal/domain"
)

// GiftResponse is the wire projection of a catalog entry.
type GiftResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ImageURL          string    `json:"imageUrl"`
	AveragePrice      *int64    `json:"averagePrice,omitempty"`
	LinkURL           string    `json:"linkUrl,omitempty"`
	DeliveryAddress   string    `json:"deliveryAddress,omitempty"`
	IsPurchased       bool      `json:"isPurchased"`
	PurchasedByUserID *int      `json:"purchasedByUserId"`
	PurchasedBy       *string   `json:"purchasedBy"`
	PaymentMethod     string    `json:"paymentMethod,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewGiftResponse shapes a gift and its purchaser name for the wire.
func NewGiftResponse(gift *domain.Gift, purchasedBy string) GiftResponse {
	resp := GiftResponse{
		ID:                gift.ID,
		Name:              gift.Name,
		Description:       gift.Description,
		ImageURL:          gift.ImageURL,
		AveragePrice:      gift.AveragePrice,
		LinkURL:           gift.LinkURL,
		DeliveryAddress:   gift.DeliveryAddress,
		IsPurchased:       gift.IsPurchased,
		PurchasedByUserID: gift.PurchasedByUserID,
		PaymentMethod:     gift.PaymentMethod,
		CreatedAt:         gift.CreatedAt,
	}
	if gift.PurchasedByUserID != nil {
		resp.PurchasedBy = &purchasedBy
	}
	return resp
}

// CreateGiftRequest payload for new catalog entries.
type CreateGiftRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl"`
	AveragePrice    *int64 `json:"averagePrice"`
	LinkURL         string `json:"linkUrl"`
	DeliveryAddress string `json:"deliveryAddress"`
}

// UpdateGiftRequest payload for partial edits; absent fields stay untouched.
type UpdateGiftRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
	AveragePrice    *int64  `json:"averagePrice"`
	LinkURL         *string `json:"linkUrl"`
	DeliveryAddress *string `json:"deliveryAddress"`
}

// PurchaseGiftRequest payload for marking a gift purchased.
type PurchaseGiftRequest struct {
	UserID        int    `json:"userId"`
	PaymentMethod string `json:"paymentMethod"`
}
