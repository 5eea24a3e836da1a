package profile

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

var IndustryOptions = []string{
	"Construction",
	"Renewable Energy",
	"Manufacturing",
	"Healthcare",
	"Education",
	"Professional Services",
	"Hospitality",
	"Retail",
}

var FundingTypeOptions = []string{
	"Capital grants",
	"Decarbonisation",
	"Innovation funding",
	"Training funding",
	"Local authority support",
}

var RegionOptions = []string{
	"UK-wide",
	"England",
	"Scotland",
	"Wales",
	"Northern Ireland",
}

const (
	DefaultRegion    = "UK-wide"
	DefaultMinAmount = int64(50000)
)

type Preferences struct {
	Industries   []string `json:"industries"`
	FundingTypes []string `json:"funding_types"`
	Region       string   `json:"region"`
	MinAmount    int64    `json:"min_amount"`
}

// NewPreferences de-duplicates the selections, keeping the first occurrence of each.
func NewPreferences(industries, fundingTypes []string, region string, minAmount int64) Preferences {
	return Preferences{
		Industries:   dedupe(industries),
		FundingTypes: dedupe(fundingTypes),
		Region:       strings.TrimSpace(region),
		MinAmount:    minAmount,
	}
}

// CanSubmit mirrors the save button: at least one industry, one funding type and a
// region are required together.
func (p Preferences) CanSubmit() bool {
	return len(p.Industries) > 0 && len(p.FundingTypes) > 0 && strings.TrimSpace(p.Region) != ""
}

func (p Preferences) Validate() error {
	if len(p.Industries) == 0 {
		return &FieldError{Field: "industries", Message: "Select at least one industry."}
	}
	if len(p.FundingTypes) == 0 {
		return &FieldError{Field: "funding_types", Message: "Select at least one funding type."}
	}
	if strings.TrimSpace(p.Region) == "" {
		return &FieldError{Field: "region", Message: "Select a region."}
	}
	for _, v := range p.Industries {
		if !slices.Contains(IndustryOptions, v) {
			return &FieldError{Field: "industries", Message: "Unknown industry: " + v}
		}
	}
	for _, v := range p.FundingTypes {
		if !slices.Contains(FundingTypeOptions, v) {
			return &FieldError{Field: "funding_types", Message: "Unknown funding type: " + v}
		}
	}
	if !slices.Contains(RegionOptions, p.Region) {
		return &FieldError{Field: "region", Message: "Unknown region: " + p.Region}
	}
	if p.MinAmount < 0 {
		return &FieldError{Field: "min_amount", Message: "Minimum amount cannot be negative."}
	}
	return nil
}

// ParseMinAmount coerces the free text amount field: blank or unparsable input is 0,
// anything else is rounded half up and clamped at 0.
func ParseMinAmount(text string) int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	rounded := math.Floor(f + 0.5)
	if rounded <= 0 {
		return 0
	}
	if rounded >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(rounded)
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
