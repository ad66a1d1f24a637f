package usecase

import (
	"context"
	"time"

	"github.com/kitadi/kitadi/internal/domain"
)

// UserRepository defines persistence for identities. Delete returns a
// ConflictError while contributions reference the user; the check and
// the delete are atomic.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// CampaignRepository defines persistence for campaigns. Delete returns
// a ConflictError while contributions reference the campaign; the
// check and the delete are atomic.
type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	GetByID(ctx context.Context, id string) (domain.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (domain.Campaign, error)
	GetByName(ctx context.Context, name string) (domain.Campaign, error)
	List(ctx context.Context, ownerID string, filter domain.CampaignFilter, offset, limit int) ([]domain.Campaign, int64, error)
	Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	Delete(ctx context.Context, id string) error
	// ApplyContribution adds amount to the stored current amount as a
	// single storage-side read-modify-write.
	ApplyContribution(ctx context.Context, id string, amount float64) (domain.Campaign, error)
}

// ContributionRepository defines persistence for contributions. Record
// inserts the contribution and applies the campaign increment inside
// one transaction.
type ContributionRepository interface {
	Record(ctx context.Context, contribution domain.Contribution) (domain.Contribution, domain.Campaign, error)
	CountByCampaign(ctx context.Context, campaignID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// TokenIssuer mints session tokens for an identity.
type TokenIssuer interface {
	Issue(user domain.User) (string, time.Time, error)
}

// EventPublisher broadcasts domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event any) error
}
