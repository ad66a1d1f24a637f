package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kitadi/kitadi/internal/domain"
)

// In-memory repositories used across the usecase tests. All of them are
// safe for concurrent use so the aggregate tests can hammer them.

type memUserRepo struct {
	mu            sync.Mutex
	seq           int
	users         map[string]domain.User
	contributions *memContributionRepo
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]domain.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == user.Phone {
			return domain.User{}, domain.ConflictError{Detail: "user phone already exists"}
		}
	}
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

func (m *memUserRepo) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *memUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	user.PasswordHash = passwordHash
	m.users[id] = user
	return user, nil
}

// Delete refuses while contributions reference the user, checked under
// the same locks as Record so a donation cannot slip in between.
func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	if m.contributions != nil {
		m.contributions.mu.Lock()
		defer m.contributions.mu.Unlock()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	if m.contributions != nil {
		for _, c := range m.contributions.contributions {
			if c.UserID == id {
				return domain.ConflictError{Detail: "user has contributions and cannot be deleted"}
			}
		}
	}
	delete(m.users, id)
	return nil
}

type memCampaignRepo struct {
	mu            sync.Mutex
	seq           int
	campaigns     map[string]domain.Campaign
	contributions *memContributionRepo
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: map[string]domain.Campaign{}}
}

func (m *memCampaignRepo) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.Name == campaign.Name || c.Slug == campaign.Slug {
			return domain.Campaign{}, domain.ConflictError{Detail: "campaign already exists"}
		}
	}
	m.seq++
	campaign.ID = fmt.Sprintf("campaign-%d", m.seq)
	m.campaigns[campaign.ID] = campaign
	return campaign, nil
}

func (m *memCampaignRepo) GetByID(ctx context.Context, id string) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	campaign, ok := m.campaigns[id]
	if !ok {
		return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}
	return campaign, nil
}

func (m *memCampaignRepo) GetBySlug(ctx context.Context, slug string) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
}

func (m *memCampaignRepo) GetByName(ctx context.Context, name string) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
}

func (m *memCampaignRepo) List(ctx context.Context, ownerID string, filter domain.CampaignFilter, offset, limit int) ([]domain.Campaign, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []domain.Campaign
	for _, c := range m.campaigns {
		if c.UserID != ownerID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, c)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *memCampaignRepo) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.campaigns[campaign.ID]
	if !ok {
		return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}
	campaign.CurrentAmount = existing.CurrentAmount
	m.campaigns[campaign.ID] = campaign
	return campaign, nil
}

// Delete refuses while contributions reference the campaign, checked
// under the same locks as Record so a donation cannot slip in between.
func (m *memCampaignRepo) Delete(ctx context.Context, id string) error {
	if m.contributions != nil {
		m.contributions.mu.Lock()
		defer m.contributions.mu.Unlock()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[id]; !ok {
		return domain.NotFoundError{Resource: "campaign"}
	}
	if m.contributions != nil {
		for _, c := range m.contributions.contributions {
			if c.CampaignID == id {
				return domain.ConflictError{Detail: "campaign has contributions and cannot be deleted"}
			}
		}
	}
	delete(m.campaigns, id)
	return nil
}

func (m *memCampaignRepo) ApplyContribution(ctx context.Context, id string, amount float64) (domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	campaign, ok := m.campaigns[id]
	if !ok {
		return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}
	campaign.CurrentAmount += amount
	m.campaigns[id] = campaign
	return campaign, nil
}

type memContributionRepo struct {
	mu            sync.Mutex
	seq           int
	contributions []domain.Contribution
	campaigns     *memCampaignRepo
}

func newMemContributionRepo(campaigns *memCampaignRepo) *memContributionRepo {
	m := &memContributionRepo{campaigns: campaigns}
	if campaigns != nil {
		campaigns.contributions = m
	}
	return m
}

// Record holds the contribution lock across the increment and the
// append, mirroring the single transaction the real repository uses.
// Lock order is always contribution lock before parent lock.
func (m *memContributionRepo) Record(ctx context.Context, contribution domain.Contribution) (domain.Contribution, domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	campaign, err := m.campaigns.ApplyContribution(ctx, contribution.CampaignID, contribution.Amount)
	if err != nil {
		return domain.Contribution{}, domain.Campaign{}, err
	}

	m.seq++
	contribution.ID = fmt.Sprintf("contribution-%d", m.seq)
	m.contributions = append(m.contributions, contribution)
	return contribution, campaign, nil
}

func (m *memContributionRepo) CountByCampaign(ctx context.Context, campaignID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, c := range m.contributions {
		if c.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}

func (m *memContributionRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, c := range m.contributions {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

// gatedContributionRepo serves counts computed before the gate opens,
// so tests can commit a donation after a delete has already sampled
// the contribution count.
type gatedContributionRepo struct {
	ContributionRepository
	entered chan struct{}
	release chan struct{}
}

func newGatedContributionRepo(inner ContributionRepository) *gatedContributionRepo {
	return &gatedContributionRepo{
		ContributionRepository: inner,
		entered:                make(chan struct{}),
		release:                make(chan struct{}),
	}
}

func (g *gatedContributionRepo) CountByCampaign(ctx context.Context, campaignID string) (int64, error) {
	count, err := g.ContributionRepository.CountByCampaign(ctx, campaignID)
	g.entered <- struct{}{}
	<-g.release
	return count, err
}

func (g *gatedContributionRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := g.ContributionRepository.CountByUser(ctx, userID)
	g.entered <- struct{}{}
	<-g.release
	return count, err
}

type failingPublisher struct{}

func (p *failingPublisher) Publish(ctx context.Context, channel string, event any) error {
	return fmt.Errorf("publish failed: channel %s unavailable", channel)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []any
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
