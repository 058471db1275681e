package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
	"github.com/DenisMukonin/Project-Portfolio/internal/github"
)

type fakePortfolios struct {
	byID map[uuid.UUID]*domain.Portfolio
}

func newFakePortfolios(items ...*domain.Portfolio) *fakePortfolios {
	f := &fakePortfolios{byID: make(map[uuid.UUID]*domain.Portfolio)}
	for _, p := range items {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePortfolios) FindByID(_ context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeUsers struct {
	byID map[uuid.UUID]*domain.User
}

func newFakeUsers(items ...*domain.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[uuid.UUID]*domain.User)}
	for _, u := range items {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Upsert(_ context.Context, user domain.User) (*domain.User, error) {
	user.ID = uuid.New()
	f.byID[user.ID] = &user
	return &user, nil
}

type fakeCollection struct {
	ids     []uuid.UUID
	applied []domain.OrderUpdate
	calls   int
}

func (f *fakeCollection) ListIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.ids, nil
}

func (f *fakeCollection) UpdateOrders(_ context.Context, _ uuid.UUID, updates []domain.OrderUpdate) (int, error) {
	f.calls++
	f.applied = append(f.applied, updates...)
	return len(updates), nil
}

type fakeSyncProjects struct {
	projects  []domain.Project
	created   []domain.Project
	updated   []domain.Project
	createErr error
}

func (f *fakeSyncProjects) ListByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.projects {
		if p.PortfolioID == portfolioID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSyncProjects) Create(_ context.Context, p domain.Project) (*domain.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = uuid.New()
	f.projects = append(f.projects, p)
	f.created = append(f.created, p)
	return &p, nil
}

func (f *fakeSyncProjects) UpdateSyncFields(_ context.Context, p domain.Project) error {
	f.updated = append(f.updated, p)
	for i := range f.projects {
		if f.projects[i].ID == p.ID {
			f.projects[i] = p
		}
	}
	return nil
}

type fakeLocker struct {
	held     map[string]bool
	acquired []string
	released []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLocker) ReleaseLock(_ context.Context, key string) error {
	delete(f.held, key)
	f.released = append(f.released, key)
	return nil
}

type fakeRepoSource struct {
	repos []github.Repo
	err   error
}

func (f *fakeRepoSource) ListOwnedRepos(_ context.Context, _ string) ([]github.Repo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

type fakeViews struct {
	events  []domain.ViewEvent
	total   int
	last30  int
	daily   []domain.DailyViews
	devices []domain.DeviceViews
}

func (f *fakeViews) Insert(_ context.Context, e domain.ViewEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeViews) CountAll(_ context.Context, _ uuid.UUID) (int, error) {
	return f.total, nil
}

func (f *fakeViews) CountSince(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	return f.last30, nil
}

func (f *fakeViews) DailyCounts(_ context.Context, _ uuid.UUID, _ time.Time) ([]domain.DailyViews, error) {
	return f.daily, nil
}

func (f *fakeViews) DeviceCounts(_ context.Context, _ uuid.UUID, _ time.Time) ([]domain.DeviceViews, error) {
	return f.devices, nil
}

type fakeCooldown struct {
	allow bool
	keys  []string
}

func (f *fakeCooldown) Allow(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, nil
}

type fakeExperiences struct {
	byID map[uuid.UUID]*domain.Experience
	next int
}

func newFakeExperiences(items ...*domain.Experience) *fakeExperiences {
	f := &fakeExperiences{byID: make(map[uuid.UUID]*domain.Experience)}
	for _, e := range items {
		f.byID[e.ID] = e
		if e.OrderIndex >= f.next {
			f.next = e.OrderIndex + 1
		}
	}
	return f
}

func (f *fakeExperiences) ListByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]domain.Experience, error) {
	var out []domain.Experience
	for _, e := range f.byID {
		if e.PortfolioID == portfolioID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExperiences) FindByID(_ context.Context, portfolioID, id uuid.UUID) (*domain.Experience, error) {
	e, ok := f.byID[id]
	if !ok || e.PortfolioID != portfolioID {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExperiences) Create(_ context.Context, e domain.Experience) (*domain.Experience, error) {
	e.ID = uuid.New()
	f.byID[e.ID] = &e
	return &e, nil
}

func (f *fakeExperiences) Update(_ context.Context, e domain.Experience) (*domain.Experience, error) {
	f.byID[e.ID] = &e
	return &e, nil
}

func (f *fakeExperiences) Delete(_ context.Context, portfolioID, id uuid.UUID) error {
	e, ok := f.byID[id]
	if !ok || e.PortfolioID != portfolioID {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeExperiences) NextOrderIndex(_ context.Context, _ uuid.UUID) (int, error) {
	n := f.next
	f.next++
	return n, nil
}

type fakePortfolioStore struct {
	*fakePortfolios
	countByUser int
	createErrs  []error
	created     []domain.Portfolio
	updated     []domain.Portfolio
}

func (f *fakePortfolioStore) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Portfolio, error) {
	var out []domain.Portfolio
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePortfolioStore) CountByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return f.countByUser, nil
}

func (f *fakePortfolioStore) Create(_ context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	p.ID = uuid.New()
	f.byID[p.ID] = &p
	f.created = append(f.created, p)
	return &p, nil
}

func (f *fakePortfolioStore) Update(_ context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	f.byID[p.ID] = &p
	f.updated = append(f.updated, p)
	return &p, nil
}

func (f *fakePortfolioStore) SetPublished(_ context.Context, id uuid.UUID, published bool) (*domain.Portfolio, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.IsPublished = published
	cp := *p
	return &cp, nil
}

func (f *fakePortfolioStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}
