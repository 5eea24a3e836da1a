package profile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
)

type HomeInput struct {
	UserID uuid.UUID
	Email  string
}

type HomeOutput struct {
	Email         string
	CompanyNumber string
	Status        profile.SetupStatus
	Badges        []profile.Badge
	Pills         map[string]string
}

// ExecuteHome builds the dashboard. A failed profile read is logged and shown as an
// unfinished setup instead of failing the page.
func (uc *ProfileUseCase) ExecuteHome(ctx context.Context, input HomeInput) (*HomeOutput, error) {
	ctx, span := tracer.Start(ctx, "Home")
	defer span.End()

	var p *profile.Profile
	out, err := uc.ExecuteGetProfile(ctx, GetProfileInput{UserID: input.UserID})
	switch {
	case err != nil:
		span.RecordError(err)
		uc.logger.Warn("Profile read failed, showing defaults", zap.String("user_id", input.UserID.String()), zap.Error(err))
	case out.Exists:
		p = out.Profile
	}

	status := profile.DeriveStatus(p)
	home := &HomeOutput{
		Email:  input.Email,
		Status: status,
		Badges: status.Badges(),
		Pills:  status.Pills(),
	}
	if status.CompanyLinked {
		home.CompanyNumber = p.LinkStatus().Number()
	}
	return home, nil
}
