package formbind

import (
	"strings"

	backend "veriadmin/internal/backend/models"
	"veriadmin/internal/location/models"
)

// Form is every field a location-bearing form can carry. Which of them are
// required depends on the Profile.
type Form struct {
	LocationType  string   `json:"locationType" label:"Location type" validate:"notblank,max=64"`
	BrandName     string   `json:"brandName" label:"Brand name" validate:"notblank,max=120"`
	Country       string   `json:"country" label:"Country" validate:"notblank"`
	State         string   `json:"state" label:"State" validate:"notblank"`
	LGA           string   `json:"lga" label:"LGA" validate:"notblank,max=120"`
	City          string   `json:"city" label:"City" validate:"notblank"`
	CityRegion    string   `json:"cityRegion" label:"City region" validate:"notblank,max=120"`
	CityRegionFee *float64 `json:"cityRegionFee" label:"City region fee" validate:"required,gte=0"`
	HouseNumber   string   `json:"houseNumber" label:"House number" validate:"notblank,max=32"`
	Street        string   `json:"street" label:"Street" validate:"notblank,max=200"`
	Landmark      string   `json:"landmark" label:"Landmark" validate:"notblank,max=200"`
	BuildingType  string   `json:"buildingType" label:"Building type" validate:"notblank,max=64"`
	DefaultFee    *float64 `json:"defaultFee" label:"Default fee" validate:"required,gte=0"`
	Description   string   `json:"description" label:"Description" validate:"notblank,max=500"`
}

// Details are the non-location fields a form collects next to the selector.
type Details struct {
	LocationType string   `json:"locationType"`
	BrandName    string   `json:"brandName"`
	HouseNumber  string   `json:"houseNumber"`
	Street       string   `json:"street"`
	Landmark     string   `json:"landmark"`
	BuildingType string   `json:"buildingType"`
	DefaultFee   *float64 `json:"defaultFee"`
	Description  string   `json:"description"`
	IsActive     *bool    `json:"isActive"`
}

// Bind merges the selection snapshot and the form's own fields. Levels the
// profile does not carry are left empty.
func Bind(p Profile, snap models.Snapshot, d Details) Form {
	addr := snap.Address()
	f := Form{
		LocationType: d.LocationType,
		BrandName:    d.BrandName,
		HouseNumber:  d.HouseNumber,
		Street:       d.Street,
		Landmark:     d.Landmark,
		BuildingType: d.BuildingType,
		DefaultFee:   d.DefaultFee,
		Description:  d.Description,
	}
	if p.carries(models.LevelCountry) {
		f.Country = addr.Country
	}
	if p.carries(models.LevelState) {
		f.State = addr.State
	}
	if p.carries(models.LevelLGA) {
		f.LGA = addr.LGA
	}
	if p.carries(models.LevelCity) {
		f.City = addr.City
	}
	if p.carries(models.LevelCityRegion) {
		f.CityRegion = addr.CityRegion
		f.CityRegionFee = addr.CityRegionFee
	}
	return f.Normalize()
}

// Normalize trims every text field.
func (f Form) Normalize() Form {
	for _, s := range []*string{
		&f.LocationType, &f.BrandName, &f.Country, &f.State, &f.LGA, &f.City,
		&f.CityRegion, &f.HouseNumber, &f.Street, &f.Landmark, &f.BuildingType, &f.Description,
	} {
		*s = strings.TrimSpace(*s)
	}
	return f
}

func (f Form) present() map[string]bool {
	return map[string]bool{
		"locationType":  f.LocationType != "",
		"brandName":     f.BrandName != "",
		"country":       f.Country != "",
		"state":         f.State != "",
		"lga":           f.LGA != "",
		"city":          f.City != "",
		"cityRegion":    f.CityRegion != "",
		"cityRegionFee": f.CityRegionFee != nil,
		"houseNumber":   f.HouseNumber != "",
		"street":        f.Street != "",
		"landmark":      f.Landmark != "",
		"buildingType":  f.BuildingType != "",
		"defaultFee":    f.DefaultFee != nil,
		"description":   f.Description != "",
	}
}

// ToAddress is the flat address handed back to forms that keep the record
// themselves, such as verification data. Levels the profile does not carry
// stay empty.
func ToAddress(p Profile, f Form, snap models.Snapshot) models.Address {
	a := models.Address{
		Country: f.Country,
		State:   f.State,
		LGA:     f.LGA,
		City:    f.City,
	}
	full := snap.Address()
	if p.carries(models.LevelCountry) {
		a.CountryCode = full.CountryCode
	}
	if p.carries(models.LevelState) {
		a.StateCode = full.StateCode
	}
	if p.carries(models.LevelCityRegion) {
		a.CityRegion = f.CityRegion
		a.CityRegionFee = f.CityRegionFee
	}
	return a
}

// ToLocation builds the branch record. gallery holds already-uploaded URLs.
func ToLocation(f Form, orgID string, gallery backend.Gallery) backend.Location {
	if gallery.Images == nil {
		gallery.Images = []string{}
	}
	if gallery.Videos == nil {
		gallery.Videos = []string{}
	}
	return backend.Location{
		OrganizationID: orgID,
		LocationType:   f.LocationType,
		BrandName:      f.BrandName,
		Country:        f.Country,
		State:          f.State,
		LGA:            f.LGA,
		City:           f.City,
		CityRegion:     f.CityRegion,
		CityRegionFee:  f.CityRegionFee,
		HouseNumber:    f.HouseNumber,
		Street:         f.Street,
		Landmark:       f.Landmark,
		BuildingType:   f.BuildingType,
		Gallery:        gallery,
	}
}

// ToCityRegionSet builds a city-region record holding the selected region.
func ToCityRegionSet(f Form) backend.CityRegionSet {
	set := backend.CityRegionSet{
		Country: f.Country,
		State:   f.State,
		LGA:     f.LGA,
		City:    f.City,
	}
	if f.CityRegion != "" {
		set.Regions = []backend.Region{{Name: f.CityRegion, Fee: f.CityRegionFee}}
	}
	return set
}

// ToPricingRule builds a default-pricing rule. Only fields down to the
// profile's level are set. Rules are active unless isActive says otherwise.
func ToPricingRule(p Profile, f Form, isActive *bool) backend.PricingRule {
	rule := backend.PricingRule{
		Level:       p.PricingLevel,
		Country:     f.Country,
		Description: f.Description,
		IsActive:    isActive == nil || *isActive,
	}
	if f.DefaultFee != nil {
		rule.DefaultFee = *f.DefaultFee
	}
	if p.PricingLevel.Includes(backend.PricingState) {
		rule.State = f.State
	}
	if p.PricingLevel.Includes(backend.PricingLGA) {
		rule.LGA = f.LGA
	}
	if p.PricingLevel.Includes(backend.PricingCity) {
		rule.City = f.City
	}
	return rule
}
