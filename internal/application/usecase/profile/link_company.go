package profile

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/pkg/apperror"
)

type LinkCompanyInput struct {
	UserID        uuid.UUID
	CompanyNumber string
}

// ExecuteLinkCompany stores the cleaned number and marks the company linked, clearing
// a previous skip. Saving the same number again rewrites the same row.
func (uc *ProfileUseCase) ExecuteLinkCompany(ctx context.Context, input LinkCompanyInput) (*MutationOutput, error) {
	ctx, span := tracer.Start(ctx, "LinkCompany")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	cleaned, err := profile.ValidateCompanyNumber(input.CompanyNumber)
	if err != nil {
		return nil, invalidField(err)
	}

	if err := uc.profileRepo.UpsertCompany(ctx, input.UserID, cleaned, uc.now()); err != nil {
		span.RecordError(err)
		return nil, apperror.NewWriteFailed("Could not link company", err)
	}

	return uc.afterWrite(ctx, input.UserID, service.ProfileEventCompanyLinked, map[string]any{
		"company_number": cleaned,
	})
}

type SkipCompanyInput struct {
	UserID uuid.UUID
}

// ExecuteSkipCompanyLinking records the skip only; company_linked keeps its value.
func (uc *ProfileUseCase) ExecuteSkipCompanyLinking(ctx context.Context, input SkipCompanyInput) (*MutationOutput, error) {
	ctx, span := tracer.Start(ctx, "SkipCompanyLinking")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	if err := uc.profileRepo.MarkCompanySkipped(ctx, input.UserID, uc.now()); err != nil {
		span.RecordError(err)
		return nil, apperror.NewWriteFailed("Could not skip company linking", err)
	}

	return uc.afterWrite(ctx, input.UserID, service.ProfileEventLinkingSkipped, nil)
}

type CompanyFormOutput struct {
	CompanyNumber string
	Status        profile.CompanyLinkStatus
}

// ExecuteGetCompanyForm returns the stored number for prefilling the form.
func (uc *ProfileUseCase) ExecuteGetCompanyForm(ctx context.Context, userID uuid.UUID) (*CompanyFormOutput, error) {
	out, err := uc.ExecuteGetProfile(ctx, GetProfileInput{UserID: userID})
	if err != nil {
		return nil, err
	}
	status := out.Profile.LinkStatus()
	number := ""
	if out.Profile.CompanyNumber != nil {
		number = *out.Profile.CompanyNumber
	}
	return &CompanyFormOutput{CompanyNumber: number, Status: status}, nil
}
