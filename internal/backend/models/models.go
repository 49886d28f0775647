// Package models holds the records exchanged with the backend REST API in
// their canonical form. Legacy wire shapes are produced by the backend
// package's adapters.
package models

import (
	"strings"
	"time"

	dErrors "veriadmin/pkg/domain-errors"
)

// Gallery lists uploaded asset URLs by kind.
type Gallery struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// Location is a branch of an organization with its address.
type Location struct {
	ID             string   `json:"_id,omitempty"`
	OrganizationID string   `json:"organization,omitempty"`
	LocationType   string   `json:"locationType"`
	BrandName      string   `json:"brandName"`
	Country        string   `json:"country"`
	State          string   `json:"state"`
	LGA            string   `json:"lga,omitempty"`
	City           string   `json:"city"`
	CityRegion     string   `json:"cityRegion,omitempty"`
	CityRegionFee  *float64 `json:"cityRegionFee,omitempty"`
	HouseNumber    string   `json:"houseNumber"`
	Street         string   `json:"street"`
	Landmark       string   `json:"landmark,omitempty"`
	BuildingType   string   `json:"buildingType,omitempty"`
	Gallery        Gallery  `json:"gallery"`
}

// Region is one named region of a city with its delivery fee.
type Region struct {
	Name string   `json:"name"`
	Fee  *float64 `json:"fee,omitempty"`
}

// CityRegionSet is the canonical city-region record: one city and the
// regions managed under it.
type CityRegionSet struct {
	ID      string
	Country string
	State   string
	LGA     string
	City    string
	Regions []Region
}

// PricingLevel is how deep in the hierarchy a default price applies.
type PricingLevel string

const (
	PricingCountry PricingLevel = "country"
	PricingState   PricingLevel = "state"
	PricingLGA     PricingLevel = "lga"
	PricingCity    PricingLevel = "city"
)

var pricingDepth = map[PricingLevel]int{
	PricingCountry: 1,
	PricingState:   2,
	PricingLGA:     3,
	PricingCity:    4,
}

func ParsePricingLevel(s string) (PricingLevel, error) {
	l := PricingLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := pricingDepth[l]; !ok {
		return "", dErrors.NewValidation("unknown pricing level",
			map[string]string{"level": "Level must be one of country, state, lga, city"})
	}
	return l, nil
}

// Includes reports whether fields of level other are sent at level l.
func (l PricingLevel) Includes(other PricingLevel) bool {
	return pricingDepth[other] <= pricingDepth[l]
}

// PricingRule is a default fee scoped to a place.
type PricingRule struct {
	ID          string       `json:"_id,omitempty"`
	Level       PricingLevel `json:"level"`
	Country     string       `json:"country"`
	State       string       `json:"state,omitempty"`
	LGA         string       `json:"lga,omitempty"`
	City        string       `json:"city,omitempty"`
	DefaultFee  float64      `json:"defaultFee"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"isActive"`
}

// SubscriptionPackage is a plan organizations subscribe to.
type SubscriptionPackage struct {
	ID           string   `json:"_id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"durationDays"`
	Features     []string `json:"features,omitempty"`
	IsActive     bool     `json:"isActive"`
}

// VerificationStatus is where an organization is in review.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch v := VerificationStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return v, nil
	}
	return "", dErrors.NewValidation("unknown verification status",
		map[string]string{"status": "Status must be one of pending, verified, rejected"})
}

// Organization is a business under verification.
type Organization struct {
	ID        string             `json:"_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Country   string             `json:"country,omitempty"`
	State     string             `json:"state,omitempty"`
	City      string             `json:"city,omitempty"`
	Status    VerificationStatus `json:"verificationStatus"`
	Reason    string             `json:"rejectionReason,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
