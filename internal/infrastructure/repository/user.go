package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/internal/infrastructure/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	model := userToModel(user)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ConflictError{Detail: "user phone already exists"}
		}
		return domain.User{}, errors.Wrap(err, "UserRepository.Create")
	}

	return userToDomain(model), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var model models.User
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, errors.Wrap(err, "UserRepository.GetByID")
	}
	return userToDomain(model), nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	var model models.User
	if err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, errors.Wrap(err, "UserRepository.GetByPhone")
	}
	return userToDomain(model), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "UserRepository.List")
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userToDomain(row))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	model := userToModel(user)

	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", model.ID).
		Select("phone", "name", "role", "is_active").
		Updates(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ConflictError{Detail: "user phone already exists"}
		}
		return domain.User{}, errors.Wrap(result.Error, "UserRepository.Update")
	}
	if result.RowsAffected == 0 {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}

	return r.GetByID(ctx, model.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (domain.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", passwordHash)
	if result.Error != nil {
		return domain.User{}, errors.Wrap(result.Error, "UserRepository.UpdatePassword")
	}
	if result.RowsAffected == 0 {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the user unless contributions reference them. The
// existence check and the delete share one transaction, and the
// RESTRICT constraint on contributions refuses any orphan a concurrent
// donation could still produce.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Contribution{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "UserRepository.Delete: contribution count")
		}
		if count > 0 {
			return domain.ConflictError{Detail: "user has contributions and cannot be deleted"}
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				return domain.ConflictError{Detail: "user has contributions and cannot be deleted"}
			}
			return errors.Wrap(result.Error, "UserRepository.Delete")
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Resource: "user"}
		}
		return nil
	})
}

func userToModel(user domain.User) models.User {
	return models.User{
		ID:       user.ID,
		Phone:    user.Phone,
		Password: user.PasswordHash,
		Name:     user.Name,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

func userToDomain(model models.User) domain.User {
	return domain.User{
		ID:           model.ID,
		Phone:        model.Phone,
		PasswordHash: model.Password,
		Name:         model.Name,
		Role:         model.Role,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
