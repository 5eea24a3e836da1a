package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the one row per user holding company linkage and preference filters.
// Pointer fields are NULL until the matching form has been saved.
type Profile struct {
	UserID                uuid.UUID `json:"id"`
	CompanyNumber         *string   `json:"company_number"`
	CompanyLinked         bool      `json:"company_linked"`
	CompanyLinkingSkipped bool      `json:"company_linking_skipped"`
	Industries            []string  `json:"industries"`
	FundingTypes          []string  `json:"funding_types"`
	Region                *string   `json:"region"`
	MinAmount             *int64    `json:"min_amount"`
	PreferencesSet        bool      `json:"preferences_set"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Empty is what the portal works with when no row exists yet.
func Empty(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:       userID,
		Industries:   []string{},
		FundingTypes: []string{},
	}
}

// LinkStatus collapses the two company flags into a single variant.
func (p *Profile) LinkStatus() CompanyLinkStatus {
	if p == nil {
		return CompanyLinkStatus{}
	}
	number := ""
	if p.CompanyNumber != nil {
		number = *p.CompanyNumber
	}
	switch {
	case p.CompanyLinked || number != "":
		return Linked(number)
	case p.CompanyLinkingSkipped:
		return Skipped()
	default:
		return CompanyLinkStatus{}
	}
}

// Preferences returns the stored filters, nil slices normalised to empty.
func (p *Profile) Preferences() Preferences {
	prefs := Preferences{
		Industries:   append([]string{}, p.Industries...),
		FundingTypes: append([]string{}, p.FundingTypes...),
	}
	if p.Region != nil {
		prefs.Region = *p.Region
	}
	if p.MinAmount != nil {
		prefs.MinAmount = *p.MinAmount
	}
	return prefs
}

// Repository writes are all insert-or-update on the user id; each one touches only
// its own columns plus updated_at.
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpsertCompany(ctx context.Context, userID uuid.UUID, companyNumber string, at time.Time) error
	MarkCompanySkipped(ctx context.Context, userID uuid.UUID, at time.Time) error
	UpsertPreferences(ctx context.Context, userID uuid.UUID, prefs Preferences, at time.Time) error
}
