package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/adapters/persistence"
	"github.com/khoahotran/apex-portal/internal/domain/user"
	"github.com/khoahotran/apex-portal/pkg/auth"
)

func newSeedUserCommand(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Create a user, or reset the password of an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = user.NormalizeEmail(email)
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			pool, err := persistence.NewPostgresPool(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			id, err := persistence.UpsertUserCredentials(ctx, pool, &user.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hash,
				CreatedAt:    time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			opts.log.Info("Seeded user", zap.String("email", email), zap.String("user_id", id.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&password, "password", "", "user password")

	return cmd
}
