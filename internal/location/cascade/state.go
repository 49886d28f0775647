// Package cascade implements the dependent country → state → LGA → city →
// city region selection used by every location form.
//
// A Controller owns one selection. Every mutation and every lookup
// completion runs under the controller's lock, so the selection behaves as a
// single-writer state machine even though dataset lookups run concurrently.
package cascade

import (
	"veriadmin/internal/geography"
	"veriadmin/internal/location/models"
)

// State is everything the form shows for one selection: the selected values
// plus the option lists, per-level search text, loading flags and the single
// open dropdown. It is not safe for concurrent use; Controller guards it.
type State struct {
	sel    models.Selection
	status models.Status

	countries []geography.Option
	states    []geography.Option
	statesFor string
	cities    []geography.Option
	citiesFor [2]string

	search  map[models.Level]string
	loading map[models.Level]bool
	open    models.Level
}

func newState() *State {
	return &State{
		sel:     models.NewSelection(),
		status:  models.StatusActive,
		search:  map[models.Level]string{},
		loading: map[models.Level]bool{},
	}
}

// enabled reports whether l's parent holds a value.
func (s *State) enabled(l models.Level) bool {
	p := l.Parent()
	return p == "" || !s.sel.Get(p).IsEmpty()
}

// manual reports whether l takes free text. Besides an explicit toggle, a
// dataset level falls back to free text when an ancestor was typed in, since
// there is no dataset list below a free-text entry.
func (s *State) manual(l models.Level) bool {
	if !l.IsDataset() || s.sel.Manual[l] {
		return true
	}
	switch l {
	case models.LevelState:
		return s.sel.Country.IsFreeText()
	case models.LevelCity:
		return s.sel.Country.IsFreeText() || s.sel.State.IsFreeText()
	}
	return false
}

func (s *State) mode(l models.Level) models.LevelMode {
	switch {
	case !s.enabled(l):
		return models.ModeDisabled
	case s.manual(l):
		return models.ModeManualEntry
	default:
		return models.ModeDatasetSelect
	}
}

// options returns the list for l only if it was loaded for the current
// parent values.
func (s *State) options(l models.Level) []geography.Option {
	switch l {
	case models.LevelCountry:
		return s.countries
	case models.LevelState:
		if code := s.sel.Country.DatasetCode(); code != "" && code == s.statesFor {
			return s.states
		}
	case models.LevelCity:
		want := [2]string{s.sel.Country.DatasetCode(), s.sel.State.DatasetCode()}
		if want[0] != "" && want[1] != "" && want == s.citiesFor {
			return s.cities
		}
	}
	return nil
}

func (s *State) setOptions(tag lookupTag, opts []geography.Option) {
	switch tag.level {
	case models.LevelCountry:
		s.countries = opts
	case models.LevelState:
		s.states = opts
		s.statesFor = tag.country
	case models.LevelCity:
		s.cities = opts
		s.citiesFor = [2]string{tag.country, tag.state}
	}
}

func (s *State) dropOptions(l models.Level) {
	switch l {
	case models.LevelCountry:
		s.countries = nil
	case models.LevelState:
		s.states = nil
		s.statesFor = ""
	case models.LevelCity:
		s.cities = nil
		s.citiesFor = [2]string{}
	}
	s.loading[l] = false
}

// matches reports whether a lookup's parent codes still describe the
// current selection.
func (s *State) matches(tag lookupTag) bool {
	switch tag.level {
	case models.LevelState:
		return tag.country != "" && tag.country == s.sel.Country.DatasetCode()
	case models.LevelCity:
		return tag.country != "" && tag.country == s.sel.Country.DatasetCode() &&
			tag.state != "" && tag.state == s.sel.State.DatasetCode()
	}
	return true
}

// clearBelow empties every descendant of l. With dropManual the descendants'
// manual flags are reset too.
func (s *State) clearBelow(l models.Level, dropManual bool) {
	for _, d := range l.Descendants() {
		s.sel.Clear(d)
		s.search[d] = ""
		if dropManual {
			delete(s.sel.Manual, d)
		}
	}
}

// picked closes the dropdown and forgets the search text after a value is
// chosen for l.
func (s *State) picked(l models.Level) {
	s.open = ""
	s.search[l] = ""
}
