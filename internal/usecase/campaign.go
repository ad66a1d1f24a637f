package usecase

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"

	"github.com/kitadi/kitadi"
	"github.com/kitadi/kitadi/internal/domain"
)

type CreateCampaignInput struct {
	Name         string
	Description  string
	TargetAmount float64
	Category     string
	ForWho       string
}

type UpdateCampaignInput struct {
	Name         *string
	Description  *string
	TargetAmount *float64
	Category     *string
	ForWho       *string
	IsActive     *bool
}

// CampaignUsecase owns campaign identity and aggregate state.
type CampaignUsecase struct {
	campaigns     CampaignRepository
	contributions ContributionRepository
}

func NewCampaignUsecase(campaigns CampaignRepository, contributions ContributionRepository) *CampaignUsecase {
	return &CampaignUsecase{campaigns: campaigns, contributions: contributions}
}

// Create registers a campaign. The slug is derived from the name once,
// at creation time, and never changes afterwards.
func (uc *CampaignUsecase) Create(ctx context.Context, input CreateCampaignInput, ownerID string) (domain.Campaign, error) {
	if input.Name == "" {
		return domain.Campaign{}, domain.ValidationError{Detail: "name is required"}
	}
	if input.TargetAmount < 0 {
		return domain.Campaign{}, domain.ValidationError{Detail: "target value must be non-negative"}
	}
	if !domain.IsValidCategory(input.Category) {
		return domain.Campaign{}, domain.ValidationError{Detail: "unknown campaign category"}
	}
	if !domain.IsValidForWho(input.ForWho) {
		return domain.Campaign{}, domain.ValidationError{Detail: "unknown campaign beneficiary kind"}
	}

	_, err := uc.campaigns.GetByName(ctx, input.Name)
	if err == nil {
		return domain.Campaign{}, domain.ConflictError{Detail: "campaign already exists"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Campaign{}, errors.Wrap(err, "CampaignUsecase.Create: name lookup failed")
	}

	return uc.campaigns.Create(ctx, domain.Campaign{
		Name:          input.Name,
		Slug:          slug.Make(input.Name),
		Description:   input.Description,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: 0,
		Category:      input.Category,
		ForWho:        input.ForWho,
		IsActive:      true,
		UserID:        ownerID,
	})
}

func (uc *CampaignUsecase) GetByID(ctx context.Context, id string) (domain.Campaign, error) {
	return uc.campaigns.GetByID(ctx, id)
}

func (uc *CampaignUsecase) GetBySlug(ctx context.Context, s string) (domain.Campaign, error) {
	return uc.campaigns.GetBySlug(ctx, s)
}

// List returns the caller's campaigns, paginated.
func (uc *CampaignUsecase) List(ctx context.Context, ownerID string, filter domain.CampaignFilter, page, limit int) (kitadi.Page[domain.Campaign], error) {
	page, limit = kitadi.NormalizePageParams(page, limit)

	items, total, err := uc.campaigns.List(ctx, ownerID, filter, kitadi.PageOffset(page, limit), limit)
	if err != nil {
		return kitadi.Page[domain.Campaign]{}, err
	}

	return kitadi.Page[domain.Campaign]{
		Data: items,
		Meta: kitadi.NewPageMeta(total, page, limit),
	}, nil
}

// Update applies a partial update. Only the owner or an admin may
// mutate a campaign. The slug is left untouched.
func (uc *CampaignUsecase) Update(ctx context.Context, id, requesterID, requesterRole string, input UpdateCampaignInput) (domain.Campaign, error) {
	campaign, err := uc.campaigns.GetByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, err
	}

	if err := authorizeOwner(campaign.UserID, requesterID, requesterRole); err != nil {
		return domain.Campaign{}, err
	}

	if input.Name != nil && *input.Name != campaign.Name {
		_, err := uc.campaigns.GetByName(ctx, *input.Name)
		if err == nil {
			return domain.Campaign{}, domain.ConflictError{Detail: "campaign already exists"}
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Campaign{}, errors.Wrap(err, "CampaignUsecase.Update: name lookup failed")
		}
		campaign.Name = *input.Name
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.TargetAmount != nil {
		if *input.TargetAmount < 0 {
			return domain.Campaign{}, domain.ValidationError{Detail: "target value must be non-negative"}
		}
		campaign.TargetAmount = *input.TargetAmount
	}
	if input.Category != nil {
		if !domain.IsValidCategory(*input.Category) {
			return domain.Campaign{}, domain.ValidationError{Detail: "unknown campaign category"}
		}
		campaign.Category = *input.Category
	}
	if input.ForWho != nil {
		if !domain.IsValidForWho(*input.ForWho) {
			return domain.Campaign{}, domain.ValidationError{Detail: "unknown campaign beneficiary kind"}
		}
		campaign.ForWho = *input.ForWho
	}
	if input.IsActive != nil {
		campaign.IsActive = *input.IsActive
	}

	return uc.campaigns.Update(ctx, campaign)
}

// Delete removes a campaign, refusing while contributions reference it.
func (uc *CampaignUsecase) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	campaign, err := uc.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(campaign.UserID, requesterID, requesterRole); err != nil {
		return err
	}

	count, err := uc.contributions.CountByCampaign(ctx, id)
	if err != nil {
		return errors.Wrap(err, "CampaignUsecase.Delete: contribution count failed")
	}
	if count > 0 {
		return domain.ConflictError{Detail: "campaign has contributions and cannot be deleted"}
	}

	return uc.campaigns.Delete(ctx, id)
}

// ApplyContribution is the aggregate-mutation primitive. The stored
// current amount only ever grows.
func (uc *CampaignUsecase) ApplyContribution(ctx context.Context, id string, amount float64) (domain.Campaign, error) {
	if amount <= 0 {
		return domain.Campaign{}, domain.ValidationError{Detail: "contribution amount must be positive"}
	}
	return uc.campaigns.ApplyContribution(ctx, id, amount)
}

func authorizeOwner(ownerID, requesterID, requesterRole string) error {
	if requesterRole == domain.RoleAdmin {
		return nil
	}
	if ownerID != requesterID {
		return domain.AuthorizationError{Detail: "not the campaign owner"}
	}
	return nil
}
