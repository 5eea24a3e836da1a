package auth

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/internal/domain/user"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/auth"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

const (
	msgMissingCredentials = "Please enter an email and password."
	msgInvalidCredentials = "Invalid login credentials"
	msgPasswordTooLong    = "Password cannot be longer than 72 characters."

	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	maxPasswordBytes = 72
)

var ErrInvalidCredentials = apperror.NewUnauthorized(msgInvalidCredentials, nil)

var tracer = otel.Tracer("auth_usecase")

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return apperror.NewInvalidInput(msgMissingCredentials, nil)
	}
	if len(c.Password) > maxPasswordBytes {
		return apperror.NewInvalidInput(msgPasswordTooLong, nil)
	}
	return nil
}

// SessionOutput is returned by both sign-in and sign-up.
type SessionOutput struct {
	AccessToken string
	User        *user.User
	Redirect    string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input Credentials) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	u, err := uc.userRepo.FindByEmail(ctx, user.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			span.RecordError(err)
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		span.RecordError(ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &SessionOutput{AccessToken: token, User: u, Redirect: profile.RouteHome}, nil
}
