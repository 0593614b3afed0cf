package domain

import "time"

// CartEntry records that a user currently intends to buy a gift.
// Persisted under cart/<userId>/<giftId>.json; the (userId, giftId)
// pair is the composite key, so re-adding overwrites the entry.
type CartEntry struct {
	SchemaVersion int       `json:"schemaVersion"`
	UserID        int       `json:"userId"`
	GiftID        int       `json:"giftId"`
	AddedAt       time.Time `json:"addedAt"`
}

// PhoneIndexEntry maps a phone number to its owning user id.
// Persisted under index/phone/<phoneNumber>.json.
type PhoneIndexEntry struct {
	UserID int `json:"userId"`
}
