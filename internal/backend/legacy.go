package backend

import "veriadmin/internal/backend/models"

// The city-region endpoints predate the canonical record and disagree with
// each other: create takes "stateProvince" and a list of regions, update
// takes "state" and a single region. These adapters are the only place that
// knows about it.

type legacyRegion struct {
	Name string   `json:"name"`
	Fee  *float64 `json:"fee,omitempty"`
}

type legacyCityRegionCreate struct {
	Country       string         `json:"country"`
	StateProvince string         `json:"stateProvince"`
	LGA           string         `json:"lga,omitempty"`
	City          string         `json:"city"`
	CityRegions   []legacyRegion `json:"cityRegions"`
}

type legacyCityRegionUpdate struct {
	Country       string   `json:"country"`
	State         string   `json:"state"`
	LGA           string   `json:"lga,omitempty"`
	City          string   `json:"city"`
	CityRegion    string   `json:"cityRegion"`
	CityRegionFee *float64 `json:"cityRegionFee,omitempty"`
}

// legacyCityRegion is what list and create responses look like. Older
// documents carry "stateProvince" and "cityRegions", newer ones "state" and
// a single "cityRegion".
type legacyCityRegion struct {
	ID            string         `json:"_id"`
	Country       string         `json:"country"`
	State         string         `json:"state"`
	StateProvince string         `json:"stateProvince"`
	LGA           string         `json:"lga"`
	City          string         `json:"city"`
	CityRegion    string         `json:"cityRegion"`
	CityRegionFee *float64       `json:"cityRegionFee"`
	CityRegions   []legacyRegion `json:"cityRegions"`
}

func toLegacyCreate(set models.CityRegionSet) legacyCityRegionCreate {
	regions := make([]legacyRegion, 0, len(set.Regions))
	for _, r := range set.Regions {
		regions = append(regions, legacyRegion{Name: r.Name, Fee: r.Fee})
	}
	return legacyCityRegionCreate{
		Country:       set.Country,
		StateProvince: set.State,
		LGA:           set.LGA,
		City:          set.City,
		CityRegions:   regions,
	}
}

// toLegacyUpdate sends the first region; the update endpoint edits one
// region document at a time.
func toLegacyUpdate(set models.CityRegionSet) legacyCityRegionUpdate {
	u := legacyCityRegionUpdate{
		Country: set.Country,
		State:   set.State,
		LGA:     set.LGA,
		City:    set.City,
	}
	if len(set.Regions) > 0 {
		u.CityRegion = set.Regions[0].Name
		u.CityRegionFee = set.Regions[0].Fee
	}
	return u
}

func fromLegacy(l legacyCityRegion) models.CityRegionSet {
	set := models.CityRegionSet{
		ID:      l.ID,
		Country: l.Country,
		State:   l.State,
		LGA:     l.LGA,
		City:    l.City,
	}
	if set.State == "" {
		set.State = l.StateProvince
	}
	for _, r := range l.CityRegions {
		set.Regions = append(set.Regions, models.Region{Name: r.Name, Fee: r.Fee})
	}
	if len(set.Regions) == 0 && l.CityRegion != "" {
		set.Regions = []models.Region{{Name: l.CityRegion, Fee: l.CityRegionFee}}
	}
	return set
}
