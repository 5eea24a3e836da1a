package persistence

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type postgresProfileEventRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileEventRepo(db *pgxpool.Pool, logger logger.Logger) service.ProfileEventStore {
	return &postgresProfileEventRepo{db: db, logger: logger}
}

// Append is idempotent on event_id so redelivered messages are recorded once.
func (r *postgresProfileEventRepo) Append(ctx context.Context, evt service.ProfileEvent) error {
	data, err := json.Marshal(evt.Data)
	if err != nil {
		return apperror.NewInternal("failed to marshal event data", err)
	}

	query, args, err := psql.Insert("profile_events").
		Columns("event_id", "user_id", "event_type", "data", "occurred_at").
		Values(evt.EventID, evt.UserID, string(evt.EventType), data, evt.OccurredAt).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile event insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to append profile event", err)
	}
	return nil
}
