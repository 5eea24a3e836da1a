package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
)

type memoryProfileRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]profile.Profile
	readErr  error
	writeErr error
	reads    int
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{rows: map[uuid.UUID]profile.Profile{}}
}

func (r *memoryProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.readErr != nil {
		return nil, r.readErr
	}
	p, ok := r.rows[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}

func (r *memoryProfileRepo) row(userID uuid.UUID) profile.Profile {
	p, ok := r.rows[userID]
	if !ok {
		p = *profile.Empty(userID)
	}
	return p
}

func (r *memoryProfileRepo) UpsertCompany(_ context.Context, userID uuid.UUID, number string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	p := r.row(userID)
	p.CompanyNumber = &number
	p.CompanyLinked = true
	p.CompanyLinkingSkipped = false
	p.UpdatedAt = at
	r.rows[userID] = p
	return nil
}

func (r *memoryProfileRepo) MarkCompanySkipped(_ context.Context, userID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	p := r.row(userID)
	p.CompanyLinkingSkipped = true
	p.UpdatedAt = at
	r.rows[userID] = p
	return nil
}

func (r *memoryProfileRepo) UpsertPreferences(_ context.Context, userID uuid.UUID, prefs profile.Preferences, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	p := r.row(userID)
	region, amount := prefs.Region, prefs.MinAmount
	p.Industries = prefs.Industries
	p.FundingTypes = prefs.FundingTypes
	p.Region = &region
	p.MinAmount = &amount
	p.PreferencesSet = true
	p.UpdatedAt = at
	r.rows[userID] = p
	return nil
}

// gatedProfileRepo holds its first read open, after the row has been read, until
// release is closed.
type gatedProfileRepo struct {
	*memoryProfileRepo
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedProfileRepo(inner *memoryProfileRepo) *gatedProfileRepo {
	return &gatedProfileRepo{
		memoryProfileRepo: inner,
		started:           make(chan struct{}),
		release:           make(chan struct{}),
	}
}

func (r *gatedProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := r.memoryProfileRepo.GetByUserID(ctx, userID)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.started)
		<-r.release
	}
	return p, err
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]profile.Profile
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[uuid.UUID]profile.Profile{}}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID) (*profile.Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (c *memoryCache) Set(_ context.Context, p *profile.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.UserID] = *p
	return nil
}

func (c *memoryCache) SetIfAbsent(_ context.Context, p *profile.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[p.UserID]; !ok {
		c.entries[p.UserID] = *p
	}
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.ProfileEvent
	err    error
}

func (p *recordingPublisher) PublishProfileEvent(_ context.Context, evt service.ProfileEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []service.ProfileEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]service.ProfileEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

var errStore = errors.New(`new row for relation "profiles" violates check constraint`)
