package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/repository"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// CartService manages cart membership and the contention signals shown
// to shoppers.
type CartService struct {
	carts  repository.CartRepository
	gifts  repository.GiftRepository
	users  repository.UserRepository
	logger *zap.Logger
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, gifts repository.GiftRepository, users repository.UserRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, gifts: gifts, users: users, logger: logger}
}

// List returns the caller's cart entries.
func (s *CartService) List(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.carts.ListForUser(ctx, userID)
}

// Add puts the gift into the user's cart (idempotent) and returns how
// many other users hold the same gift. The contention count is advisory:
// a failed scan degrades to zero rather than failing the add.
func (s *CartService) Add(ctx context.Context, userID, giftID int) (int, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	if _, err := s.carts.Add(ctx, userID, giftID); err != nil {
		return 0, err
	}

	count, err := s.carts.CountOthersHolding(ctx, giftID, userID)
	if err != nil {
		s.logger.Warn("cart contention scan failed", zap.Int("gift_id", giftID), zap.Error(err))
		return 0, nil
	}
	return count, nil
}

// Remove takes the gift out of the user's cart; absent entries no-op.
func (s *CartService) Remove(ctx context.Context, userID, giftID int) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.carts.Remove(ctx, userID, giftID)
}

// CheckPurchased returns the subset of giftIDs already purchased by
// someone other than the user, surfaced before checkout as "no longer
// available".
func (s *CartService) CheckPurchased(ctx context.Context, userID int, giftIDs []int) ([]int, error) {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*domain.Gift, len(gifts))
	for i := range gifts {
		byID[gifts[i].ID] = &gifts[i]
	}

	unavailable := make([]int, 0)
	for _, giftID := range giftIDs {
		gift, ok := byID[giftID]
		if !ok || !gift.IsPurchased {
			continue
		}
		if gift.PurchasedByUserID != nil && *gift.PurchasedByUserID == userID {
			continue
		}
		unavailable = append(unavailable, giftID)
	}
	return unavailable, nil
}

// OthersCounts maps each requested gift to the number of other users
// holding it.
func (s *CartService) OthersCounts(ctx context.Context, userID int, giftIDs []int) (map[int]int, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.carts.OthersHoldingCounts(ctx, giftIDs, userID)
}

func (s *CartService) requireUser(ctx context.Context, userID int) error {
	user, err := resolveActor(ctx, s.users, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}
	return nil
}
