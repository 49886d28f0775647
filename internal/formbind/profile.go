// Package formbind binds a location selection to the form it is part of:
// which fields each form requires, validation with English field messages,
// and merging the selection into the record sent to the backend.
package formbind

import (
	"strings"

	backend "veriadmin/internal/backend/models"
	"veriadmin/internal/location/models"
	dErrors "veriadmin/pkg/domain-errors"
)

// Profile describes one call site: the location levels carried into its
// record and the form fields (JSON names) that must be filled in.
type Profile struct {
	Name     string
	Levels   []models.Level
	Required []string
	// PricingLevel is set only for default-pricing forms.
	PricingLevel backend.PricingLevel
}

const (
	ProfileNameLocation     = "location"
	ProfileNameCityRegion   = "city_region"
	ProfileNamePricing      = "pricing"
	ProfileNameVerification = "verification"
)

// LocationRecord is the organization branch form. LGA and city region are
// optional.
func LocationRecord() Profile {
	return Profile{
		Name:     ProfileNameLocation,
		Levels:   models.Levels,
		Required: []string{"country", "state", "city", "houseNumber", "street"},
	}
}

// CityRegionManagement manages the regions of a city and their fees.
func CityRegionManagement() Profile {
	return Profile{
		Name:     ProfileNameCityRegion,
		Levels:   models.Levels,
		Required: []string{"country", "state", "city", "cityRegion", "cityRegionFee"},
	}
}

// VerificationData is the address part of an organization's verification
// record. The verification form stores it itself, so submitting it returns
// the resolved address instead of calling the backend.
func VerificationData() Profile {
	return Profile{
		Name:     ProfileNameVerification,
		Levels:   []models.Level{models.LevelCountry, models.LevelState, models.LevelLGA, models.LevelCity},
		Required: []string{"country", "state", "city"},
	}
}

// DefaultPricing scopes a default fee to level. Only levels down to it are
// sent. LGA is required only when pricing is set at LGA level.
func DefaultPricing(level backend.PricingLevel) Profile {
	p := Profile{Name: ProfileNamePricing, PricingLevel: level, Required: []string{"defaultFee"}}
	chain := []struct {
		pl    backend.PricingLevel
		level models.Level
	}{
		{backend.PricingCountry, models.LevelCountry},
		{backend.PricingState, models.LevelState},
		{backend.PricingLGA, models.LevelLGA},
		{backend.PricingCity, models.LevelCity},
	}
	for _, c := range chain {
		if !level.Includes(c.pl) {
			break
		}
		p.Levels = append(p.Levels, c.level)
		if c.level != models.LevelLGA || level == backend.PricingLGA {
			p.Required = append(p.Required, string(c.level))
		}
	}
	return p
}

// ProfileByName resolves a profile from its wire name. pricingLevel is used
// only for the pricing profile.
func ProfileByName(name, pricingLevel string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProfileNameLocation, "":
		return LocationRecord(), nil
	case ProfileNameCityRegion, "city-region":
		return CityRegionManagement(), nil
	case ProfileNameVerification:
		return VerificationData(), nil
	case ProfileNamePricing:
		level, err := backend.ParsePricingLevel(pricingLevel)
		if err != nil {
			return Profile{}, err
		}
		return DefaultPricing(level), nil
	}
	return Profile{}, dErrors.New(dErrors.CodeBadRequest, "unknown form profile: "+name)
}

func (p Profile) carries(l models.Level) bool {
	for _, lv := range p.Levels {
		if lv == l {
			return true
		}
	}
	return false
}

func (p Profile) requires(field string) bool {
	for _, f := range p.Required {
		if f == field {
			return true
		}
	}
	return false
}
