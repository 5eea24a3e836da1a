package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/auth"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type LogoutUseCase struct {
	sessions service.SessionStore
	logger   logger.Logger
	now      func() time.Time
}

func NewLogoutUseCase(sessions service.SessionStore, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, logger: log, now: time.Now}
}

type LogoutOutput struct {
	Redirect string
}

// Execute revokes the presented token for the rest of its lifetime.
func (uc *LogoutUseCase) Execute(ctx context.Context, claims *auth.CustomClaims) (*LogoutOutput, error) {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	ttl := claims.ExpiresIn(uc.now())
	if ttl > 0 {
		if err := uc.sessions.Revoke(ctx, claims.TokenID(), ttl); err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to revoke session", err)
		}
	}

	uc.logger.Info("User signed out", zap.String("user_id", claims.UserID.String()))
	return &LogoutOutput{Redirect: profile.RouteLogin}, nil
}
