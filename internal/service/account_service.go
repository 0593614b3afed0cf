package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/gift-registry/internal/auth"
	"github.com/spec-kit/gift-registry/internal/blob"
	"github.com/spec-kit/gift-registry/internal/domain"
	"github.com/spec-kit/gift-registry/internal/events"
	"github.com/spec-kit/gift-registry/internal/repository"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
}

// UpdateUserInput carries partial account edits; nil fields are untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.UserRole
}

// AccountService coordinates registration, login and account management.
type AccountService struct {
	users      repository.UserRepository
	index      repository.PhoneIndex
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository, index repository.PhoneIndex, dispatcher events.Dispatcher, bcryptCost int) *AccountService {
	return &AccountService{users: users, index: index, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// Register creates an account and claims its phone index entry. The
// pre-check against the phone number is a fast path; the index claim is
// what actually closes the duplicate-phone race. A lost claim rolls the
// freshly written user record back.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	phone := strings.TrimSpace(input.PhoneNumber)

	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return nil, apperrors.NewConflict("a user with this phone number already exists")
	} else if !errors.Is(err, blob.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         domain.RoleSimpleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	claimed, err := s.index.Claim(ctx, phone, user.ID)
	if err != nil {
		// The account exists but the index write failed; the scan
		// fallback still finds the user, so surface nothing worse than
		// the degraded lookup path.
		return user, nil
	}
	if !claimed {
		// Another registration won the phone; remove the duplicate record.
		_ = s.users.Delete(ctx, user.ID)
		return nil, apperrors.NewConflict("a user with this phone number already exists")
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventUserRegistered, events.UserRegisteredPayload{UserID: user.ID}))
	}
	return user, nil
}

// Login authenticates by phone and password. Failures are indistinguishable
// to the caller.
func (s *AccountService) Login(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperrors.NewUnauthorized("invalid phone number or password")
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid phone number or password")
	}
	return user, nil
}

// ListUsers returns every account. Admin only.
func (s *AccountService) ListUsers(ctx context.Context, actorID int) ([]domain.User, error) {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageGifts(actor) {
		return nil, apperrors.NewForbidden("only admins can list users")
	}
	return s.users.List(ctx)
}

// GetUser loads a single account.
func (s *AccountService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, apperrors.NewNotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser edits name fields (self or admin) and role (admin only).
func (s *AccountService) UpdateUser(ctx context.Context, actorID, id int, input UpdateUserInput) (*domain.User, error) {
	actor, err := resolveActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || (actor.ID != id && !auth.IsAdmin(actor)) {
		return nil, apperrors.NewForbidden("only the account owner or admin can update users")
	}
	if input.Role != nil && !auth.IsAdmin(actor) {
		return nil, apperrors.NewForbidden("only admins can change roles")
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword acknowledges the request without revealing whether the
// phone number is registered.
func (s *AccountService) ForgotPassword(ctx context.Context, phone string) error {
	_, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil && !errors.Is(err, blob.ErrNotFound) {
		return err
	}
	return nil
}

// ResetPassword replaces the password hash for the account behind the phone.
func (s *AccountService) ResetPassword(ctx context.Context, phone, newPassword string) error {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, blob.ErrNotFound) {
		return apperrors.NewNotFound("user")
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// resolveActor loads the acting user; an unknown id yields a nil actor,
// which the permission guard treats as no rights at all.
func resolveActor(ctx context.Context, users repository.UserRepository, id int) (*domain.User, error) {
	if id <= 0 {
		return nil, nil
	}
	user, err := users.GetByID(ctx, id)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
