package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/internal/domain/user"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*user.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return user.ErrEmailAlreadyTaken
	}
	r.users[u.Email] = u
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

type memorySessions struct {
	mu      sync.Mutex
	revoked map[string]bool
	err     error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{revoked: map[string]bool{}}
}

func (m *memorySessions) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memorySessions) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[tokenID], nil
}

// memoryProfileRepo counts reads so tests can assert the guard stops a request
// before any profile fetch.
type memoryProfileRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]profile.Profile
	reads    int
	writeErr error
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{rows: map[uuid.UUID]profile.Profile{}}
}

func (r *memoryProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	p, ok := r.rows[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}

func (r *memoryProfileRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

func (r *memoryProfileRepo) row(userID uuid.UUID) profile.Profile {
	if p, ok := r.rows[userID]; ok {
		return p
	}
	return *profile.Empty(userID)
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
