package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"id",
	"company_number",
	"company_linked",
	"company_linking_skipped",
	"industries",
	"funding_types",
	"region",
	"min_amount",
	"preferences_set",
	"updated_at",
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	p := &profile.Profile{}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&p.UserID,
		&p.CompanyNumber,
		&p.CompanyLinked,
		&p.CompanyLinkingSkipped,
		&p.Industries,
		&p.FundingTypes,
		&p.Region,
		&p.MinAmount,
		&p.PreferencesSet,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if p.Industries == nil {
		p.Industries = []string{}
	}
	if p.FundingTypes == nil {
		p.FundingTypes = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) UpsertCompany(ctx context.Context, userID uuid.UUID, companyNumber string, at time.Time) error {
	return r.upsert(ctx, "upsert company", map[string]any{
		"id":                      userID,
		"company_number":          companyNumber,
		"company_linked":          true,
		"company_linking_skipped": false,
		"updated_at":              at,
	})
}

func (r *postgresProfileRepo) MarkCompanySkipped(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.upsert(ctx, "mark company skipped", map[string]any{
		"id":                      userID,
		"company_linking_skipped": true,
		"updated_at":              at,
	})
}

func (r *postgresProfileRepo) UpsertPreferences(ctx context.Context, userID uuid.UUID, prefs profile.Preferences, at time.Time) error {
	return r.upsert(ctx, "upsert preferences", map[string]any{
		"id":              userID,
		"industries":      prefs.Industries,
		"funding_types":   prefs.FundingTypes,
		"region":          prefs.Region,
		"min_amount":      prefs.MinAmount,
		"preferences_set": true,
		"updated_at":      at,
	})
}

// upsert inserts the given columns, or on an existing row overwrites exactly those
// columns. Columns not named keep their stored value.
func (r *postgresProfileRepo) upsert(ctx context.Context, op string, values map[string]any) error {
	columns := make([]string, 0, len(values))
	for _, c := range profileColumns {
		if _, ok := values[c]; ok {
			columns = append(columns, c)
		}
	}

	args := make([]any, len(columns))
	for i, c := range columns {
		args[i] = values[c]
	}

	assignments := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "id" {
			continue
		}
		assignments = append(assignments, c+" = EXCLUDED."+c)
	}

	query, sqlArgs, err := psql.Insert("profiles").
		Columns(columns...).
		Values(args...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build "+op+" query", err)
	}

	// The driver error is returned unwrapped; callers show its text to the user.
	if _, err := r.db.Exec(ctx, query, sqlArgs...); err != nil {
		r.logger.Warn("Profile write failed", zap.String("op", op), zap.Any("user_id", values["id"]), zap.Error(err))
		return err
	}
	return nil
}
