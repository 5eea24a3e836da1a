package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/apex-portal/internal/domain/user"
	"github.com/khoahotran/apex-portal/pkg/apperror"
)

type CurrentUserUseCase struct {
	userRepo user.Repository
}

func NewCurrentUserUseCase(repo user.Repository) *CurrentUserUseCase {
	return &CurrentUserUseCase{userRepo: repo}
}

// Execute treats a deleted account like a missing session.
func (uc *CurrentUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewUnauthorized("session user no longer exists", err)
		}
		return nil, err
	}
	return u, nil
}
