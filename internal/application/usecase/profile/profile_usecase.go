package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	cache       service.ProfileCache
	publisher   service.EventPublisher
	logger      logger.Logger
	now         func() time.Time
}

// NewProfileUseCase accepts a nil cache or publisher; reads then go straight to the
// repository and no events are emitted.
func NewProfileUseCase(repo profile.Repository, cache service.ProfileCache, publisher service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		publisher:   publisher,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
	// Exists is false when no row has been written for the user yet.
	Exists bool
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	if uc.cache != nil {
		p, hit, err := uc.cache.Get(ctx, input.UserID)
		if err != nil {
			uc.logger.Warn("Profile cache read failed", zap.String("user_id", input.UserID.String()), zap.Error(err))
		} else if hit {
			return &GetProfileOutput{Profile: p, Exists: true}, nil
		}
	}

	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return &GetProfileOutput{Profile: profile.Empty(input.UserID), Exists: false}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetIfAbsent(ctx, p); err != nil {
			uc.logger.Warn("Profile cache write failed", zap.String("user_id", input.UserID.String()), zap.Error(err))
		}
	}
	return &GetProfileOutput{Profile: p, Exists: true}, nil
}

// MutationOutput tells the client where to go after a successful write and that
// the home view must be read again.
type MutationOutput struct {
	Profile  *profile.Profile
	Redirect string
	Refetch  bool
}

// afterWrite reloads the profile, writes it through to the cache and publishes the
// event.
func (uc *ProfileUseCase) afterWrite(ctx context.Context, userID uuid.UUID, evtType service.ProfileEventType, data map[string]any) (*MutationOutput, error) {
	uc.publish(service.ProfileEvent{
		EventID:    uuid.New(),
		EventType:  evtType,
		UserID:     userID,
		OccurredAt: uc.now(),
		Data:       data,
	})

	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		// The write went through; a failed reload only costs the echo.
		uc.logger.Warn("Failed to reload profile after write", zap.String("user_id", userID.String()), zap.Error(err))
		p = nil
	}
	uc.refreshCache(ctx, userID, p)

	return &MutationOutput{Profile: p, Redirect: profile.RouteHome, Refetch: true}, nil
}

// refreshCache overwrites any entry filled by a read that started before the write.
// Without a reloaded row the entry is dropped instead.
func (uc *ProfileUseCase) refreshCache(ctx context.Context, userID uuid.UUID, p *profile.Profile) {
	if uc.cache == nil {
		return
	}
	var err error
	if p != nil {
		err = uc.cache.Set(ctx, p)
	} else {
		err = uc.cache.Invalidate(ctx, userID)
	}
	if err != nil {
		uc.logger.Warn("Profile cache refresh failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (uc *ProfileUseCase) publish(evt service.ProfileEvent) {
	if uc.publisher == nil {
		return
	}
	go func() {
		if err := uc.publisher.PublishProfileEvent(context.Background(), evt); err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("event_type", string(evt.EventType)),
				zap.String("user_id", evt.UserID.String()),
			)
		}
	}()
}

func invalidField(err error) error {
	var fe *profile.FieldError
	if errors.As(err, &fe) {
		return apperror.NewInvalidInput(fe.Message, err)
	}
	return apperror.NewInvalidInput(err.Error(), err)
}
