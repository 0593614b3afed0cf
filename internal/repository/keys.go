package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// Key layout of the blob store. Every entity lives under a deterministic
// path-like key so the store stays inspectable by prefix.
const (
	giftPrefix       = "gifts/"
	userPrefix       = "users/"
	phoneIndexPrefix = "index/phone/"
	cartPrefix       = "cart/"

	giftSequenceKey = "seq/gifts"
	userSequenceKey = "seq/users"
)

func giftKey(id int) string {
	return fmt.Sprintf("%s%d.json", giftPrefix, id)
}

func userKey(id int) string {
	return fmt.Sprintf("%s%d.json", userPrefix, id)
}

func phoneIndexKey(phone string) string {
	return phoneIndexPrefix + phone + ".json"
}

func cartKey(userID, giftID int) string {
	return fmt.Sprintf("%s%d/%d.json", cartPrefix, userID, giftID)
}

func cartUserPrefix(userID int) string {
	return fmt.Sprintf("%s%d/", cartPrefix, userID)
}

// parseCartKey decodes cart/<userId>/<giftId>.json.
func parseCartKey(key string) (userID, giftID int, ok bool) {
	rest, found := strings.CutPrefix(key, cartPrefix)
	if !found {
		return 0, 0, false
	}
	rest, found = strings.CutSuffix(rest, ".json")
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	userID, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	giftID, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return userID, giftID, true
}
