package domain

import "time"

// Gift is the catalog record persisted under gifts/<id>.json.
//
// Invariant: PurchasedByUserID is non-nil iff IsPurchased is true.
type Gift struct {
	SchemaVersion     int       `json:"schemaVersion"`
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ImageURL          string    `json:"imageUrl"`
	AveragePrice      *int64    `json:"averagePrice,omitempty"` // cents
	LinkURL           string    `json:"linkUrl,omitempty"`
	DeliveryAddress   string    `json:"deliveryAddress,omitempty"`
	IsPurchased       bool      `json:"isPurchased"`
	PurchasedByUserID *int      `json:"purchasedByUserId"`
	PaymentMethod     string    `json:"paymentMethod,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
