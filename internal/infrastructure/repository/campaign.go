package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/internal/infrastructure/database/models"
)

type CampaignRepository struct {
	db *gorm.DB
	// slug -> campaign id. Slugs are assigned once at creation and
	// never change, so this mapping is safe to cache in-process.
	slugCache *cache.Cache
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{
		db:        db,
		slugCache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	model := campaignToModel(campaign)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Campaign{}, domain.ConflictError{Detail: "campaign already exists"}
		}
		return domain.Campaign{}, errors.Wrap(err, "CampaignRepository.Create")
	}

	r.slugCache.Set(model.Slug, model.ID, cache.DefaultExpiration)
	return campaignToDomain(model), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (domain.Campaign, error) {
	var model models.Campaign
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
		}
		return domain.Campaign{}, errors.Wrap(err, "CampaignRepository.GetByID")
	}
	return campaignToDomain(model), nil
}

func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (domain.Campaign, error) {
	if id, ok := r.slugCache.Get(slug); ok {
		campaign, err := r.GetByID(ctx, id.(string))
		if err == nil {
			return campaign, nil
		}
		r.slugCache.Delete(slug)
	}

	var model models.Campaign
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
		}
		return domain.Campaign{}, errors.Wrap(err, "CampaignRepository.GetBySlug")
	}

	r.slugCache.Set(model.Slug, model.ID, cache.DefaultExpiration)
	return campaignToDomain(model), nil
}

func (r *CampaignRepository) GetByName(ctx context.Context, name string) (domain.Campaign, error) {
	var model models.Campaign
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
		}
		return domain.Campaign{}, errors.Wrap(err, "CampaignRepository.GetByName")
	}
	return campaignToDomain(model), nil
}

func (r *CampaignRepository) List(ctx context.Context, ownerID string, filter domain.CampaignFilter, offset, limit int) ([]domain.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("user_id = ?", ownerID)
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "CampaignRepository.List: count")
	}

	var rows []models.Campaign
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "CampaignRepository.List: find")
	}

	campaigns := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		campaigns = append(campaigns, campaignToDomain(row))
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	model := campaignToModel(campaign)

	result := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", model.ID).
		Select("name", "description", "target_amount", "category", "for_who", "is_active").
		Updates(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.Campaign{}, domain.ConflictError{Detail: "campaign already exists"}
		}
		return domain.Campaign{}, errors.Wrap(result.Error, "CampaignRepository.Update")
	}
	if result.RowsAffected == 0 {
		return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}

	return r.GetByID(ctx, model.ID)
}

// Delete removes the campaign unless contributions reference it. The
// existence check and the delete share one transaction, and the
// RESTRICT constraint on contributions refuses any orphan a concurrent
// donation could still produce.
func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	var model models.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "campaign"}
			}
			return errors.Wrap(err, "CampaignRepository.Delete: lookup")
		}

		var count int64
		if err := tx.Model(&models.Contribution{}).Where("campaign_id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "CampaignRepository.Delete: contribution count")
		}
		if count > 0 {
			return domain.ConflictError{Detail: "campaign has contributions and cannot be deleted"}
		}

		if err := tx.Delete(&models.Campaign{}, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return domain.ConflictError{Detail: "campaign has contributions and cannot be deleted"}
			}
			return errors.Wrap(err, "CampaignRepository.Delete")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.slugCache.Delete(model.Slug)
	return nil
}

// ApplyContribution credits the campaign aggregate with a storage-side
// increment, so concurrent donations never lose updates.
func (r *CampaignRepository) ApplyContribution(ctx context.Context, id string, amount float64) (domain.Campaign, error) {
	var model models.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		incremented, err := incrementCampaignAmount(tx, id, amount)
		if err != nil {
			return err
		}
		model = incremented
		return nil
	})
	if err != nil {
		return domain.Campaign{}, err
	}
	return campaignToDomain(model), nil
}

// incrementCampaignAmount runs the atomic read-modify-write on the
// current amount. Callers compose it into larger transactions.
func incrementCampaignAmount(tx *gorm.DB, id string, amount float64) (models.Campaign, error) {
	result := tx.Model(&models.Campaign{}).
		Where("id = ?", id).
		UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount))
	if result.Error != nil {
		return models.Campaign{}, errors.Wrap(result.Error, "campaign increment failed")
	}
	if result.RowsAffected == 0 {
		return models.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}

	var model models.Campaign
	if err := tx.First(&model, "id = ?", id).Error; err != nil {
		return models.Campaign{}, errors.Wrap(err, "campaign re-read failed")
	}
	return model, nil
}

func campaignToModel(campaign domain.Campaign) models.Campaign {
	return models.Campaign{
		ID:            campaign.ID,
		Name:          campaign.Name,
		Slug:          campaign.Slug,
		Description:   campaign.Description,
		TargetAmount:  campaign.TargetAmount,
		CurrentAmount: campaign.CurrentAmount,
		Category:      campaign.Category,
		ForWho:        campaign.ForWho,
		IsActive:      campaign.IsActive,
		UserID:        campaign.UserID,
	}
}

func campaignToDomain(model models.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:            model.ID,
		Name:          model.Name,
		Slug:          model.Slug,
		Description:   model.Description,
		TargetAmount:  model.TargetAmount,
		CurrentAmount: model.CurrentAmount,
		Category:      model.Category,
		ForWho:        model.ForWho,
		IsActive:      model.IsActive,
		UserID:        model.UserID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
