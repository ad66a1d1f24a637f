package usecase

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/kitadi/kitadi"
	"github.com/kitadi/kitadi/internal/domain"
)

type CreateUserInput struct {
	Phone    string
	Password string
	Name     string
	Role     string
}

type UpdateUserInput struct {
	Phone    *string
	Name     *string
	Role     *string
	IsActive *bool
}

// UserUsecase covers administrative identity management.
type UserUsecase struct {
	users         UserRepository
	contributions ContributionRepository
}

func NewUserUsecase(users UserRepository, contributions ContributionRepository) *UserUsecase {
	return &UserUsecase{users: users, contributions: contributions}
}

func (uc *UserUsecase) List(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (uc *UserUsecase) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (uc *UserUsecase) Create(ctx context.Context, input CreateUserInput) (domain.User, error) {
	if !kitadi.IsValidAngolaPhone(input.Phone) {
		return domain.User{}, domain.ValidationError{Detail: "phone is not a valid Angolan mobile number"}
	}
	if len(input.Password) < 6 {
		return domain.User{}, domain.ValidationError{Detail: "password must be at least 6 characters"}
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ValidationError{Detail: "unknown role"}
	}

	phone := kitadi.NormalizePhone(input.Phone)

	_, err := uc.users.GetByPhone(ctx, phone)
	if err == nil {
		return domain.User{}, domain.ConflictError{Detail: "user phone already exists"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, errors.Wrap(err, "UserUsecase.Create: phone lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserUsecase.Create: password hashing failed")
	}

	user, err := uc.users.Create(ctx, domain.User{
		Phone:        phone,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (uc *UserUsecase) Update(ctx context.Context, id string, input UpdateUserInput) (domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Phone != nil {
		phone := kitadi.NormalizePhone(*input.Phone)
		if phone != user.Phone {
			if !kitadi.IsValidAngolaPhone(phone) {
				return domain.User{}, domain.ValidationError{Detail: "phone is not a valid Angolan mobile number"}
			}
			_, err := uc.users.GetByPhone(ctx, phone)
			if err == nil {
				return domain.User{}, domain.ConflictError{Detail: "phone number already in use"}
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return domain.User{}, errors.Wrap(err, "UserUsecase.Update: phone lookup failed")
			}
			user.Phone = phone
		}
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !domain.IsValidRole(*input.Role) {
			return domain.User{}, domain.ValidationError{Detail: "unknown role"}
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	updated, err := uc.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	updated.PasswordHash = ""
	return updated, nil
}

func (uc *UserUsecase) UpdatePassword(ctx context.Context, id, password string) (domain.User, error) {
	if len(password) < 6 {
		return domain.User{}, domain.ValidationError{Detail: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserUsecase.UpdatePassword: password hashing failed")
	}

	user, err := uc.users.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (uc *UserUsecase) Deactivate(ctx context.Context, id string) (domain.User, error) {
	inactive := false
	return uc.Update(ctx, id, UpdateUserInput{IsActive: &inactive})
}

// Delete removes an identity. Identities referenced by contributions
// are never hard-deleted.
func (uc *UserUsecase) Delete(ctx context.Context, id string) error {
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.contributions.CountByUser(ctx, id)
	if err != nil {
		return errors.Wrap(err, "UserUsecase.Delete: contribution count failed")
	}
	if count > 0 {
		return domain.ConflictError{Detail: "user has contributions and cannot be deleted"}
	}

	return uc.users.Delete(ctx, id)
}
