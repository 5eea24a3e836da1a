package profile

import (
	"regexp"
	"strings"
)

var (
	ErrCompanyNumberRequired = &FieldError{
		Field:   "company_number",
		Message: "Please enter your Companies House number.",
	}
	ErrCompanyNumberFormat = &FieldError{
		Field:   "company_number",
		Message: "That doesn't look like a valid Companies House number (e.g. 12345678 or SC123456).",
	}
)

// 8 digits (England/Wales) or 2 letters + 6 digits (SC123456, NI123456, OC123456...).
var companyNumberPattern = regexp.MustCompile(`^(\d{8}|[A-Z]{2}\d{6})$`)

func NormalizeCompanyNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateCompanyNumber returns the cleaned number or one of the two form errors.
func ValidateCompanyNumber(raw string) (string, error) {
	cleaned := NormalizeCompanyNumber(raw)
	if cleaned == "" {
		return "", ErrCompanyNumberRequired
	}
	if !companyNumberPattern.MatchString(cleaned) {
		return "", ErrCompanyNumberFormat
	}
	return cleaned, nil
}

type LinkState string

const (
	LinkStateUnset   LinkState = "unset"
	LinkStateSkipped LinkState = "skipped"
	LinkStateLinked  LinkState = "linked"
)

// CompanyLinkStatus is Unset, Skipped or Linked(number). The zero value is Unset.
type CompanyLinkStatus struct {
	state  LinkState
	number string
}

func Linked(number string) CompanyLinkStatus {
	return CompanyLinkStatus{state: LinkStateLinked, number: number}
}

func Skipped() CompanyLinkStatus {
	return CompanyLinkStatus{state: LinkStateSkipped}
}

func (s CompanyLinkStatus) State() LinkState {
	if s.state == "" {
		return LinkStateUnset
	}
	return s.state
}

// Number is empty unless the status is Linked.
func (s CompanyLinkStatus) Number() string {
	return s.number
}

func (s CompanyLinkStatus) IsLinked() bool {
	return s.state == LinkStateLinked
}
