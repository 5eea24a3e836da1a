package profile

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
)

type SavePreferencesInput struct {
	UserID       uuid.UUID
	Industries   []string
	FundingTypes []string
	Region       string
	// MinAmount is the raw text of the amount field.
	MinAmount string
}

func (uc *ProfileUseCase) ExecuteSavePreferences(ctx context.Context, input SavePreferencesInput) (*MutationOutput, error) {
	ctx, span := tracer.Start(ctx, "SavePreferences")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	prefs := profile.NewPreferences(input.Industries, input.FundingTypes, input.Region, profile.ParseMinAmount(input.MinAmount))
	if err := prefs.Validate(); err != nil {
		return nil, invalidField(err)
	}

	if err := uc.profileRepo.UpsertPreferences(ctx, input.UserID, prefs, uc.now()); err != nil {
		span.RecordError(err)
		return nil, apperror.NewWriteFailed("Could not save preferences", err)
	}

	return uc.afterWrite(ctx, input.UserID, service.ProfileEventPrefsSaved, map[string]any{
		"industries":    prefs.Industries,
		"funding_types": prefs.FundingTypes,
		"region":        prefs.Region,
		"min_amount":    prefs.MinAmount,
	})
}

type PreferencesFormOutput struct {
	Industries     []string
	FundingTypes   []string
	Region         string
	MinAmount      string
	PreferencesSet bool
}

// ExecuteGetPreferencesForm prefills the form from the stored row, falling back to
// the form defaults for anything not saved yet.
func (uc *ProfileUseCase) ExecuteGetPreferencesForm(ctx context.Context, userID uuid.UUID) (*PreferencesFormOutput, error) {
	out, err := uc.ExecuteGetProfile(ctx, GetProfileInput{UserID: userID})
	if err != nil {
		return nil, err
	}
	p := out.Profile

	form := &PreferencesFormOutput{
		Industries:     append([]string{}, p.Industries...),
		FundingTypes:   append([]string{}, p.FundingTypes...),
		Region:         profile.DefaultRegion,
		MinAmount:      strconv.FormatInt(profile.DefaultMinAmount, 10),
		PreferencesSet: p.PreferencesSet,
	}
	if p.Region != nil {
		form.Region = *p.Region
	}
	if p.MinAmount != nil {
		form.MinAmount = strconv.FormatInt(*p.MinAmount, 10)
	}
	return form, nil
}
