// Package models holds the value types of a location selection: the ordered
// levels, the per-level tagged value and the read-only snapshot handed to
// form bindings.
package models

import (
	"strings"

	dErrors "veriadmin/pkg/domain-errors"
)

// Level is one tier of the location hierarchy.
type Level string

const (
	LevelCountry    Level = "country"
	LevelState      Level = "state"
	LevelLGA        Level = "lga"
	LevelCity       Level = "city"
	LevelCityRegion Level = "city_region"
)

// Levels lists every level in hierarchy order.
var Levels = []Level{LevelCountry, LevelState, LevelLGA, LevelCity, LevelCityRegion}

var levelLabels = map[Level]string{
	LevelCountry:    "Country",
	LevelState:      "State",
	LevelLGA:        "LGA",
	LevelCity:       "City",
	LevelCityRegion: "City region",
}

// ParseLevel accepts the canonical names plus the hyphenated spelling used in
// URLs ("city-region").
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := levelLabels[l]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown location level: "+s)
	}
	return l, nil
}

func (l Level) String() string {
	return string(l)
}

// Label is the human-readable field name used in error messages.
func (l Level) Label() string {
	return levelLabels[l]
}

// IsDataset reports whether the level normally selects from a dataset list.
// LGA and city region are always free text.
func (l Level) IsDataset() bool {
	return l == LevelCountry || l == LevelState || l == LevelCity
}

// Parent is the level that must hold a value before l is enabled. Country has
// no parent. LGA and city both hang off state.
func (l Level) Parent() Level {
	switch l {
	case LevelState:
		return LevelCountry
	case LevelLGA, LevelCity:
		return LevelState
	case LevelCityRegion:
		return LevelCity
	default:
		return ""
	}
}

// Descendants returns the levels after l in hierarchy order. These are the
// levels cleared when l changes through a manual toggle.
func (l Level) Descendants() []Level {
	for i, lv := range Levels {
		if lv == l {
			out := make([]Level, len(Levels)-i-1)
			copy(out, Levels[i+1:])
			return out
		}
	}
	return nil
}

// LevelMode is how a level is presented to the user.
type LevelMode string

const (
	ModeDisabled      LevelMode = "disabled"
	ModeDatasetSelect LevelMode = "dataset_select"
	ModeManualEntry   LevelMode = "manual_entry"
)
