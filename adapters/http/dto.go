package http

import (
	"encoding/json"
	"time"

	profileUC "github.com/khoahotran/apex-portal/internal/application/usecase/profile"
	"github.com/khoahotran/apex-portal/internal/domain/profile"
	"github.com/khoahotran/apex-portal/internal/domain/user"
)

// Auth DTOs

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID.String(), Email: u.Email}
}

// Profile DTOs

type ProfileDTO struct {
	ID                    string            `json:"id"`
	CompanyNumber         *string           `json:"company_number"`
	CompanyLinked         bool              `json:"company_linked"`
	CompanyLinkingSkipped bool              `json:"company_linking_skipped"`
	CompanyLinkStatus     profile.LinkState `json:"company_link_status"`
	Industries            []string          `json:"industries"`
	FundingTypes          []string          `json:"funding_types"`
	Region                *string           `json:"region"`
	MinAmount             *int64            `json:"min_amount"`
	PreferencesSet        bool              `json:"preferences_set"`
	UpdatedAt             *time.Time        `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:                    p.UserID.String(),
		CompanyNumber:         p.CompanyNumber,
		CompanyLinked:         p.CompanyLinked,
		CompanyLinkingSkipped: p.CompanyLinkingSkipped,
		CompanyLinkStatus:     p.LinkStatus().State(),
		Industries:            p.Industries,
		FundingTypes:          p.FundingTypes,
		Region:                p.Region,
		MinAmount:             p.MinAmount,
		PreferencesSet:        p.PreferencesSet,
	}
	if dto.Industries == nil {
		dto.Industries = []string{}
	}
	if dto.FundingTypes == nil {
		dto.FundingTypes = []string{}
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		dto.UpdatedAt = &updated
	}
	return dto
}

type MutationResponse struct {
	Redirect string      `json:"redirect"`
	Refetch  bool        `json:"refetch"`
	Profile  *ProfileDTO `json:"profile,omitempty"`
}

func ToMutationResponse(out *profileUC.MutationOutput) MutationResponse {
	resp := MutationResponse{Redirect: out.Redirect, Refetch: out.Refetch}
	if out.Profile != nil {
		dto := ToProfileDTO(out.Profile)
		resp.Profile = &dto
	}
	return resp
}

// Link company DTOs

type LinkCompanyRequest struct {
	CompanyNumber string `json:"company_number"`
}

type CompanyFormDTO struct {
	CompanyNumber string            `json:"company_number"`
	Status        profile.LinkState `json:"status"`
	Hint          string            `json:"hint"`
}

// Preferences DTOs

type SavePreferencesRequest struct {
	Industries   []string   `json:"industries"`
	FundingTypes []string   `json:"funding_types"`
	Region       string     `json:"region"`
	MinAmount    amountText `json:"min_amount"`
	// MaxAmount is collected by the form but never stored.
	MaxAmount amountText `json:"max_amount,omitempty"`
}

// amountText accepts the amount field as either a JSON string or a JSON number and
// keeps its raw text for the domain parser.
type amountText string

func (a *amountText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amountText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountText(n.String())
	return nil
}

type PreferenceOptionsDTO struct {
	Industries   []string `json:"industries"`
	FundingTypes []string `json:"funding_types"`
	Regions      []string `json:"regions"`
}

type PreferencesFormDTO struct {
	Industries     []string             `json:"industries"`
	FundingTypes   []string             `json:"funding_types"`
	Region         string               `json:"region"`
	MinAmount      string               `json:"min_amount"`
	PreferencesSet bool                 `json:"preferences_set"`
	CanSubmit      bool                 `json:"can_submit"`
	Options        PreferenceOptionsDTO `json:"options"`
}

func ToPreferencesFormDTO(out *profileUC.PreferencesFormOutput) PreferencesFormDTO {
	prefs := profile.NewPreferences(out.Industries, out.FundingTypes, out.Region, 0)
	return PreferencesFormDTO{
		Industries:     out.Industries,
		FundingTypes:   out.FundingTypes,
		Region:         out.Region,
		MinAmount:      out.MinAmount,
		PreferencesSet: out.PreferencesSet,
		CanSubmit:      prefs.CanSubmit(),
		Options: PreferenceOptionsDTO{
			Industries:   profile.IndustryOptions,
			FundingTypes: profile.FundingTypeOptions,
			Regions:      profile.RegionOptions,
		},
	}
}

// Home DTOs

type HomeDTO struct {
	Email         string              `json:"email"`
	CompanyNumber string              `json:"company_number,omitempty"`
	Status        profile.SetupStatus `json:"status"`
	Badges        []profile.Badge     `json:"badges"`
	Pills         map[string]string   `json:"pills"`
	Opportunities OpportunitiesDTO    `json:"opportunities"`
}

func ToHomeDTO(out *profileUC.HomeOutput) HomeDTO {
	return HomeDTO{
		Email:         out.Email,
		CompanyNumber: out.CompanyNumber,
		Status:        out.Status,
		Badges:        out.Badges,
		Pills:         out.Pills,
		Opportunities: emptyOpportunities(),
	}
}

type OpportunityDTO struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

// OpportunitiesDTO is always empty; nothing produces matches yet.
type OpportunitiesDTO struct {
	Items   []OpportunityDTO `json:"items"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

func emptyOpportunities() OpportunitiesDTO {
	return OpportunitiesDTO{
		Items:   []OpportunityDTO{},
		Title:   "No opportunities yet",
		Message: "Link your company and set preferences to start receiving matches.",
	}
}
