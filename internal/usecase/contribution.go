package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/kitadi/kitadi/internal/domain"
)

var tracer = otel.Tracer("usecase")

type DonateInput struct {
	CampaignID    string
	Amount        float64
	TransactionID string
}

// ContributionUsecase records contributions against campaigns. The
// contribution insert and the aggregate increment happen inside one
// repository transaction.
type ContributionUsecase struct {
	contributions ContributionRepository
	campaigns     CampaignRepository
	users         UserRepository
	events        EventPublisher
}

func NewContributionUsecase(
	contributions ContributionRepository,
	campaigns CampaignRepository,
	users UserRepository,
	events EventPublisher,
) *ContributionUsecase {
	return &ContributionUsecase{
		contributions: contributions,
		campaigns:     campaigns,
		users:         users,
		events:        events,
	}
}

// Donate validates contributor and campaign, persists the contribution
// and credits the campaign aggregate. Deduplication by TransactionID is
// the caller's responsibility.
func (uc *ContributionUsecase) Donate(ctx context.Context, input DonateInput, contributorID string) (domain.DonationReceipt, error) {
	ctx, span := tracer.Start(ctx, "Contribution.Usecase.Donate")
	defer span.End()

	if input.Amount <= 0 {
		return domain.DonationReceipt{}, domain.ValidationError{Detail: "contribution amount must be positive"}
	}
	if input.CampaignID == "" {
		return domain.DonationReceipt{}, domain.ValidationError{Detail: "campaign id is required"}
	}

	user, err := uc.users.GetByID(ctx, contributorID)
	if err != nil {
		return domain.DonationReceipt{}, err
	}

	campaign, err := uc.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.DonationReceipt{}, err
	}
	if !campaign.IsActive {
		return domain.DonationReceipt{}, domain.ValidationError{Detail: "campaign is not accepting contributions"}
	}

	contribution, campaign, err := uc.contributions.Record(ctx, domain.Contribution{
		Amount:        input.Amount,
		UserID:        user.ID,
		CampaignID:    campaign.ID,
		TransactionID: input.TransactionID,
	})
	if err != nil {
		return domain.DonationReceipt{}, err
	}

	if uc.events != nil {
		event := domain.ContributionEvent{
			ContributionID: contribution.ID,
			CampaignID:     campaign.ID,
			CampaignName:   campaign.Name,
			UserID:         user.ID,
			Amount:         contribution.Amount,
			RecordedAt:     contribution.CreatedAt,
		}
		if err := uc.events.Publish(ctx, domain.ContributionChannel, event); err != nil {
			// The contribution is already durable; a lost event is not
			// worth failing the request over.
			span.RecordError(errors.Wrap(err, "contribution event publish failed"))
		}
	}

	return domain.DonationReceipt{
		Donation: domain.Donation{
			Campaign:  domain.DonationCampaign{Name: campaign.Name},
			Value:     contribution.Amount,
			CreatedAt: contribution.CreatedAt,
			UpdatedAt: contribution.UpdatedAt,
		},
	}, nil
}
