package profile

import "math"

type Stage string

const (
	StageUnauthenticated Stage = "unauthenticated"
	StageNoProfile       Stage = "no_profile"
	StagePartialSetup    Stage = "partial_setup"
	StageFullSetup       Stage = "full_setup"
)

const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteLinkCompany   = "/link-company"
	RoutePreferences   = "/preferences"
	RouteOpportunities = "/opportunities"
	RouteLanding       = "/landing"
)

// SetupStatus is the dashboard view of a profile. Monitoring counts as active only
// when the company is linked and preferences are set.
type SetupStatus struct {
	CompanyLinked    bool   `json:"company_linked"`
	PreferencesSet   bool   `json:"preferences_set"`
	MonitoringActive bool   `json:"monitoring_active"`
	Progress         int    `json:"progress"`
	Stage            Stage  `json:"stage"`
	NextStep         string `json:"next_step"`
}

// DeriveStatus accepts a nil profile for users without a row.
func DeriveStatus(p *Profile) SetupStatus {
	companyLinked := p != nil && p.LinkStatus().IsLinked()
	prefsSet := p != nil && p.PreferencesSet

	st := SetupStatus{
		CompanyLinked:    companyLinked,
		PreferencesSet:   prefsSet,
		MonitoringActive: companyLinked && prefsSet,
		Progress:         Progress(companyLinked, prefsSet),
		NextStep:         RouteLinkCompany,
	}
	if companyLinked {
		st.NextStep = RoutePreferences
	}

	switch {
	case p == nil:
		st.Stage = StageNoProfile
	case companyLinked && prefsSet:
		st.Stage = StageFullSetup
	default:
		st.Stage = StagePartialSetup
	}
	return st
}

// Progress is the rounded share of completed flags, as a percentage.
func Progress(flags ...bool) int {
	if len(flags) == 0 {
		return 0
	}
	done := 0
	for _, f := range flags {
		if f {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(flags)) * 100))
}

type Badge struct {
	Label  string `json:"label"`
	Status string `json:"status"`
	Tone   string `json:"tone"`
}

func (s SetupStatus) Badges() []Badge {
	return []Badge{
		completion("Company linked", s.CompanyLinked),
		completion("Preferences set", s.PreferencesSet),
		monitoring(s.MonitoringActive),
	}
}

// Pills are the short labels on the two setup tiles.
func (s SetupStatus) Pills() map[string]string {
	pills := map[string]string{"company": "Not linked", "preferences": "Not set"}
	if s.CompanyLinked {
		pills["company"] = "Linked"
	}
	if s.PreferencesSet {
		pills["preferences"] = "Set"
	}
	return pills
}

func completion(label string, ok bool) Badge {
	if ok {
		return Badge{Label: label, Status: "Complete", Tone: "good"}
	}
	return Badge{Label: label, Status: "Not yet", Tone: "bad"}
}

func monitoring(active bool) Badge {
	if active {
		return Badge{Label: "Monitoring active", Status: "Active", Tone: "good"}
	}
	return Badge{Label: "Monitoring active", Status: "Pending", Tone: "warn"}
}
