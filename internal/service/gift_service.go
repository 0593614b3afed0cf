package service

import (
	"context"
	"errors"

	"github.com/spec-kit/gift-registry/internal/auth"
	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/cache"
	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/events"
	"github.com/spec-kit/gift-registry/internal/repository"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// GiftView pairs a gift with its purchaser's display name.
type GiftView struct {
	Gift        domain.Gift
	PurchasedBy string
}

// CreateGiftInput carries admin-supplied catalog fields.
type CreateGiftInput struct {
	Name            string
	Description     string
	ImageURL        string
	AveragePrice    *int64
	LinkURL         string
	DeliveryAddress string
}

// UpdateGiftInput carries partial catalog edits; nil fields are untouched.
type UpdateGiftInput struct {
	Name            *string
	Description     *string
	ImageURL        *string
	AveragePrice    *int64
	LinkURL         *string
	DeliveryAddress *string
}

// PurchaseInput identifies the buyer and the chosen payment method.
type PurchaseInput struct {
	UserID        int
	PaymentMethod string
}

// GiftService coordinates catalog reads, admin curation and the
// purchase/unpurchase transitions.
type GiftService struct {
	gifts      repository.GiftRepository
	users      repository.UserRepository
	usersCache *cache.Users
	dispatcher events.Dispatcher
}

// NewGiftService builds the service.
func NewGiftService(gifts repository.GiftRepository, users repository.UserRepository, usersCache *cache.Users, dispatcher events.Dispatcher) *GiftService {
	return &GiftService{gifts: gifts, users: users, usersCache: usersCache, dispatcher: dispatcher}
}

// List returns the catalog ordered by creation time, joining purchaser
// names through the time-boxed users cache. The user table is only
// fetched when at least one gift is purchased.
func (s *GiftService) List(ctx context.Context) ([]GiftView, error) {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return nil, err
	}

	anyPurchased := false
	for i := range gifts {
		if gifts[i].PurchasedByUserID != nil {
			anyPurchased = true
			break
		}
	}

	names := map[int]string{}
	if anyPurchased {
		users, err := s.cachedUsers(ctx)
		if err != nil {
			return nil, err
		}
		for i := range users {
			names[users[i].ID] = users[i].FullName()
		}
	}

	views := make([]GiftView, 0, len(gifts))
	for i := range gifts {
		view := GiftView{Gift: gifts[i]}
		if gifts[i].PurchasedByUserID != nil {
			view.PurchasedBy = names[*gifts[i].PurchasedByUserID]
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns one gift with its purchaser name resolved directly.
func (s *GiftService) Get(ctx context.Context, id int) (*GiftView, error) {
	gift, err := s.gifts.GetByID(ctx, id)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperrors.NewNotFound("gift")
	}
	if err != nil {
		return nil, err
	}

	view := &GiftView{Gift: *gift}
	if gift.PurchasedByUserID != nil {
		user, err := s.users.GetByID(ctx, *gift.PurchasedByUserID)
		if err == nil {
			view.PurchasedBy = user.FullName()
		} else if !errors.Is(err, blob.ErrNotFound) {
			return nil, err
		}
	}
	return view, nil
}

// Create adds a catalog entry. Admin only; new gifts are never purchased.
func (s *GiftService) Create(ctx context.Context, actorID int, input CreateGiftInput) (*domain.Gift, error) {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageGifts(actor) {
		return nil, apperrors.NewForbidden("only admins can create gifts")
	}

	gift := &domain.Gift{
		Name:            input.Name,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		AveragePrice:    input.AveragePrice,
		LinkURL:         input.LinkURL,
		DeliveryAddress: input.DeliveryAddress,
	}
	if err := s.gifts.Create(ctx, gift); err != nil {
		return nil, err
	}
	return gift, nil
}

// Update applies partial field edits. Admin only.
func (s *GiftService) Update(ctx context.Context, actorID, id int, input UpdateGiftInput) (*domain.Gift, error) {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageGifts(actor) {
		return nil, apperrors.NewForbidden("only admins can update gifts")
	}

	gift, err := s.gifts.GetByID(ctx, id)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperrors.NewNotFound("gift")
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		gift.Name = *input.Name
	}
	if input.Description != nil {
		gift.Description = *input.Description
	}
	if input.ImageURL != nil {
		gift.ImageURL = *input.ImageURL
	}
	if input.AveragePrice != nil {
		gift.AveragePrice = input.AveragePrice
	}
	if input.LinkURL != nil {
		gift.LinkURL = *input.LinkURL
	}
	if input.DeliveryAddress != nil {
		gift.DeliveryAddress = *input.DeliveryAddress
	}

	if err := s.gifts.Update(ctx, gift); err != nil {
		return nil, err
	}
	return gift, nil
}

// Delete removes a catalog entry. Admin only.
func (s *GiftService) Delete(ctx context.Context, actorID, id int) error {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}
	if !auth.CanManageGifts(actor) {
		return apperrors.NewForbidden("only admins can delete gifts")
	}

	if err := s.gifts.Delete(ctx, id); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return apperrors.NewNotFound("gift")
		}
		return err
	}
	return nil
}

// Purchase reserves a gift for the buyer. Admins cannot purchase; a gift
// can only be purchased once.
func (s *GiftService) Purchase(ctx context.Context, giftID int, input PurchaseInput) error {
	buyer, err := resolveActor(ctx, s.users, input.UserID)
	if err != nil {
		return err
	}
	if buyer == nil {
		return apperrors.NewNotFound("user")
	}
	if !auth.CanPurchaseGifts(buyer) {
		return apperrors.NewForbidden("admins cannot purchase gifts")
	}

	gift, err := s.gifts.GetByID(ctx, giftID)
	if errors.Is(err, blob.ErrNotFound) {
		return apperrors.NewNotFound("gift")
	}
	if err != nil {
		return err
	}
	if gift.IsPurchased {
		return apperrors.NewConflict("gift is already purchased")
	}

	userID := input.UserID
	gift.IsPurchased = true
	gift.PurchasedByUserID = &userID
	gift.PaymentMethod = input.PaymentMethod
	if err := s.gifts.Update(ctx, gift); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventGiftPurchased, events.GiftPurchasedPayload{
			GiftID:        giftID,
			UserID:        userID,
			PaymentMethod: input.PaymentMethod,
		}))
	}
	return nil
}

// Unpurchase releases a reservation. Only the original purchaser or an
// admin may do so.
func (s *GiftService) Unpurchase(ctx context.Context, giftID, actorID int) error {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return err
	}

	gift, err := s.gifts.GetByID(ctx, giftID)
	if errors.Is(err, blob.ErrNotFound) {
		return apperrors.NewNotFound("gift")
	}
	if err != nil {
		return err
	}
	if !gift.IsPurchased {
		return apperrors.NewConflict("gift is not purchased")
	}
	if !auth.IsAdmin(actor) && (gift.PurchasedByUserID == nil || *gift.PurchasedByUserID != actorID) {
		return apperrors.NewForbidden("only the purchaser or admin can unpurchase")
	}

	gift.IsPurchased = false
	gift.PurchasedByUserID = nil
	gift.PaymentMethod = ""
	if err := s.gifts.Update(ctx, gift); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventGiftUnpurchased, events.GiftUnpurchasedPayload{
			GiftID:      giftID,
			ActorUserID: actorID,
		}))
	}
	return nil
}

func (s *GiftService) cachedUsers(ctx context.Context) ([]domain.User, error) {
	if users, ok := s.usersCache.Get(); ok {
		return users, nil
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	s.usersCache.Set(users)
	return users, nil
}
