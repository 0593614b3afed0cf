package auth

import "github.com/spec-kit/gift-registry/internal/domain"

// Permission checks are pure functions over an already-loaded user.
// A nil user means the caller could not be resolved.

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(user *domain.User) bool {
	return user != nil && user.Role == domain.RoleAdmin
}

// CanManageGifts reports whether the user may create, edit or delete
// catalog entries. Catalog mutation is admin-exclusive.
func CanManageGifts(user *domain.User) bool {
	return IsAdmin(user)
}

// CanPurchaseGifts reports whether the user may reserve gifts. Admins
// cannot purchase.
func CanPurchaseGifts(user *domain.User) bool {
	return user != nil && !IsAdmin(user)
}
