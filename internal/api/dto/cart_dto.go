package dto

import (
	"time"

	"github.com/spec-kit/gift-registry/internal/domain"
)

// CartEntryResponse is the wire projection of a cart entry.
type CartEntryResponse struct {
	GiftID  int       `json:"giftId"`
	UserID  int       `json:"userId"`
	AddedAt time.Time `json:"addedAt"`
}

// NewCartEntryResponse shapes an entry for the wire.
func NewCartEntryResponse(entry *domain.CartEntry) CartEntryResponse {
	return CartEntryResponse{
		GiftID:  entry.GiftID,
		UserID:  entry.UserID,
		AddedAt: entry.AddedAt,
	}
}

// AddCartRequest payload for adding an item.
type AddCartRequest struct {
	UserID int `json:"userId"`
	GiftID int `json:"giftId"`
}

// AddCartResponse reports success plus the contention signal.
type AddCartResponse struct {
	Success         bool `json:"success"`
	OtherUsersCount int  `json:"otherUsersCount"`
}

// CartGiftIDsRequest payload shared by the check and others endpoints.
type CartGiftIDsRequest struct {
	UserID  int    `json:"userId"`
	GiftIDs *[]int `json:"giftIds"`
}

// CheckCartResponse lists cart candidates already taken by someone else.
type CheckCartResponse struct {
	PurchasedItems      []int `json:"purchasedItems"`
	HasUnavailableItems bool  `json:"hasUnavailableItems"`
}
