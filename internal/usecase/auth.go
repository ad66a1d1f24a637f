package usecase

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/kitadi/kitadi"
	"github.com/kitadi/kitadi/internal/domain"
)

const bcryptCost = 10

type RegisterInput struct {
	Phone    string
	Password string
	Name     string
}

type AuthUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens}
}

// Register creates a new identity with role USER and returns a fresh
// session for it.
func (uc *AuthUsecase) Register(ctx context.Context, input RegisterInput) (domain.AuthSession, error) {
	if !kitadi.IsValidAngolaPhone(input.Phone) {
		return domain.AuthSession{}, domain.ValidationError{Detail: "phone is not a valid Angolan mobile number"}
	}
	if len(input.Password) < 6 {
		return domain.AuthSession{}, domain.ValidationError{Detail: "password must be at least 6 characters"}
	}
	if input.Name == "" {
		return domain.AuthSession{}, domain.ValidationError{Detail: "name is required"}
	}

	phone := kitadi.NormalizePhone(input.Phone)

	_, err := uc.users.GetByPhone(ctx, phone)
	if err == nil {
		return domain.AuthSession{}, domain.ConflictError{Detail: "user phone already exists"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.AuthSession{}, errors.Wrap(err, "AuthUsecase.Register: phone lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return domain.AuthSession{}, errors.Wrap(err, "AuthUsecase.Register: password hashing failed")
	}

	user, err := uc.users.Create(ctx, domain.User{
		Phone:        phone,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         domain.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		return domain.AuthSession{}, err
	}

	return uc.newSession(user)
}

// Login verifies credentials and issues a session token. Unknown phone,
// inactive account and hash mismatch all fail identically.
func (uc *AuthUsecase) Login(ctx context.Context, phone, password string) (domain.AuthSession, error) {
	normalized := kitadi.NormalizePhone(phone)

	user, err := uc.users.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AuthSession{}, domain.AuthenticationError{}
		}
		return domain.AuthSession{}, errors.Wrap(err, "AuthUsecase.Login: phone lookup failed")
	}

	if !user.IsActive {
		return domain.AuthSession{}, domain.AuthenticationError{}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.AuthSession{}, domain.AuthenticationError{}
	}

	return uc.newSession(user)
}

// Profile returns the identity without its password hash.
func (uc *AuthUsecase) Profile(ctx context.Context, id string) (domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (uc *AuthUsecase) newSession(user domain.User) (domain.AuthSession, error) {
	token, _, err := uc.tokens.Issue(user)
	if err != nil {
		return domain.AuthSession{}, err
	}
	user.PasswordHash = ""
	return domain.AuthSession{AccessToken: token, User: user}, nil
}
