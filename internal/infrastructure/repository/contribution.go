package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/internal/infrastructure/database/models"
)

type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Record persists the contribution and credits the campaign aggregate
// inside a single transaction. Either both writes commit or neither is
// visible.
func (r *ContributionRepository) Record(ctx context.Context, contribution domain.Contribution) (domain.Contribution, domain.Campaign, error) {
	model := models.Contribution{
		ID:            uuid.NewString(),
		Amount:        contribution.Amount,
		UserID:        contribution.UserID,
		CampaignID:    contribution.CampaignID,
		TransactionID: contribution.TransactionID,
	}

	var campaignModel models.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return errors.Wrap(err, "contribution insert failed")
		}

		incremented, err := incrementCampaignAmount(tx, contribution.CampaignID, contribution.Amount)
		if err != nil {
			return err
		}
		campaignModel = incremented
		return nil
	})
	if err != nil {
		return domain.Contribution{}, domain.Campaign{}, err
	}

	return contributionToDomain(model), campaignToDomain(campaignModel), nil
}

func (r *ContributionRepository) CountByCampaign(ctx context.Context, campaignID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contribution{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ContributionRepository.CountByCampaign")
	}
	return count, nil
}

func (r *ContributionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contribution{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ContributionRepository.CountByUser")
	}
	return count, nil
}

func contributionToDomain(model models.Contribution) domain.Contribution {
	return domain.Contribution{
		ID:            model.ID,
		Amount:        model.Amount,
		UserID:        model.UserID,
		CampaignID:    model.CampaignID,
		TransactionID: model.TransactionID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
