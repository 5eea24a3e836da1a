package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
)

// ProfileCache fronts profile reads. A miss is (nil, false, nil).
// Writers store the row they just reloaded with Set; read-through fills use
// SetIfAbsent so a slow read can never replace a newer entry.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, bool, error)
	Set(ctx context.Context, p *profile.Profile) error
	SetIfAbsent(ctx context.Context, p *profile.Profile) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
