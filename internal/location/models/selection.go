package models

import (
	"maps"
	"time"

	id "veriadmin/pkg/domain"
)

// Status is the lifecycle of a selection. Submitted and discarded are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusSubmitted Status = "submitted"
	StatusDiscarded Status = "discarded"
)

func (s Status) IsTerminal() bool {
	return s == StatusSubmitted || s == StatusDiscarded
}

// Selection is the current value of every level.
//
// Invariants (maintained by the cascade controller):
//   - a non-manual country is a code from the country list
//   - changing country empties every other level and drops their manual flags
//   - changing state empties lga, city and city region
//   - changing city empties city region and its fee
//   - CityRegionFee is nil whenever CityRegion is empty
type Selection struct {
	Country       Value
	State         Value
	LGA           Value
	City          Value
	CityRegion    Value
	CityRegionFee *float64
	Manual        map[Level]bool
}

func NewSelection() Selection {
	return Selection{
		Country:    Empty(),
		State:      Empty(),
		LGA:        Empty(),
		City:       Empty(),
		CityRegion: Empty(),
		Manual:     map[Level]bool{},
	}
}

func (s *Selection) Get(l Level) Value {
	switch l {
	case LevelCountry:
		return s.Country
	case LevelState:
		return s.State
	case LevelLGA:
		return s.LGA
	case LevelCity:
		return s.City
	case LevelCityRegion:
		return s.CityRegion
	default:
		return Empty()
	}
}

func (s *Selection) Set(l Level, v Value) {
	switch l {
	case LevelCountry:
		s.Country = v
	case LevelState:
		s.State = v
	case LevelLGA:
		s.LGA = v
	case LevelCity:
		s.City = v
	case LevelCityRegion:
		s.CityRegion = v
		if v.IsEmpty() {
			s.CityRegionFee = nil
		}
	}
}

// Clear empties l. The city region fee goes with the city region.
func (s *Selection) Clear(l Level) {
	s.Set(l, Empty())
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	out := s
	if s.CityRegionFee != nil {
		fee := *s.CityRegionFee
		out.CityRegionFee = &fee
	}
	out.Manual = maps.Clone(s.Manual)
	if out.Manual == nil {
		out.Manual = map[Level]bool{}
	}
	return out
}

// Snapshot is a read-only copy of a selection taken at a point in time.
type Snapshot struct {
	ID            id.SelectionID `json:"id"`
	Status        Status         `json:"status"`
	Country       Value          `json:"country"`
	State         Value          `json:"state"`
	LGA           Value          `json:"lga"`
	City          Value          `json:"city"`
	CityRegion    Value          `json:"city_region"`
	CityRegionFee *float64       `json:"city_region_fee,omitempty"`
	ManualLevels  []Level        `json:"manual_levels"`
	TakenAt       time.Time      `json:"taken_at"`
}

// NewSnapshot copies sel. Manual levels are listed in hierarchy order.
func NewSnapshot(selID id.SelectionID, status Status, sel Selection, now time.Time) Snapshot {
	c := sel.Clone()
	manual := []Level{}
	for _, l := range Levels {
		if c.Manual[l] {
			manual = append(manual, l)
		}
	}
	return Snapshot{
		ID:            selID,
		Status:        status,
		Country:       c.Country,
		State:         c.State,
		LGA:           c.LGA,
		City:          c.City,
		CityRegion:    c.CityRegion,
		CityRegionFee: c.CityRegionFee,
		ManualLevels:  manual,
		TakenAt:       now,
	}
}

func (s Snapshot) Get(l Level) Value {
	switch l {
	case LevelCountry:
		return s.Country
	case LevelState:
		return s.State
	case LevelLGA:
		return s.LGA
	case LevelCity:
		return s.City
	case LevelCityRegion:
		return s.CityRegion
	default:
		return Empty()
	}
}

// Address flattens the snapshot into display names plus dataset codes.
// Codes are empty for levels entered as free text.
type Address struct {
	Country       string   `json:"country"`
	CountryCode   string   `json:"countryCode,omitempty"`
	State         string   `json:"state"`
	StateCode     string   `json:"stateCode,omitempty"`
	LGA           string   `json:"lga,omitempty"`
	City          string   `json:"city"`
	CityRegion    string   `json:"cityRegion,omitempty"`
	CityRegionFee *float64 `json:"cityRegionFee,omitempty"`
}

func (s Snapshot) Address() Address {
	return Address{
		Country:       s.Country.Display(),
		CountryCode:   s.Country.DatasetCode(),
		State:         s.State.Display(),
		StateCode:     s.State.DatasetCode(),
		LGA:           s.LGA.Display(),
		City:          s.City.Display(),
		CityRegion:    s.CityRegion.Display(),
		CityRegionFee: s.CityRegionFee,
	}
}
