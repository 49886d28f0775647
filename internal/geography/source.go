// Package geography provides the country → state → city option lists that
// back the dataset levels of a location selection.
//
// Every Source call may block (network or database implementations) and may
// fail; callers treat a failure as an empty list.
package geography

import (
	"context"
	"strings"
)

// Option is one selectable dataset entry. Cities have no dataset code; their
// Code equals their Name.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Source lists options for a level given the ancestor codes.
//
// Implementations return options in a stable order with unique codes, and an
// empty slice (not an error) when the parent has no modeled subdivisions.
type Source interface {
	ListCountries(ctx context.Context) ([]Option, error)
	ListStates(ctx context.Context, countryCode string) ([]Option, error)
	ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error)
}

// Filter returns the options whose name (and, when matchCode is set, code)
// contains query case-insensitively. Order is preserved. An empty query
// returns the full list.
func Filter(options []Option, query string, matchCode bool) []Option {
	q := strings.ToLower(query)
	if q == "" {
		return options
	}
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Name), q) ||
			matchCode && strings.Contains(strings.ToLower(o.Code), q) {
			out = append(out, o)
		}
	}
	return out
}

// Find resolves user input to one option: an exact code match (when matchCode)
// wins over a case-insensitive name match.
func Find(options []Option, input string, matchCode bool) (Option, bool) {
	in := strings.TrimSpace(input)
	if in == "" {
		return Option{}, false
	}
	if matchCode {
		for _, o := range options {
			if strings.EqualFold(o.Code, in) {
				return o, true
			}
		}
	}
	for _, o := range options {
		if strings.EqualFold(o.Name, in) {
			return o, true
		}
	}
	return Option{}, false
}

// NameOf returns the display name for code, or code itself when unknown.
func NameOf(options []Option, code string) string {
	for _, o := range options {
		if o.Code == code {
			return o.Name
		}
	}
	return code
}

func citiesFromNames(names []string) []Option {
	out := make([]Option, 0, len(names))
	for _, n := range names {
		out = append(out, Option{Code: n, Name: n})
	}
	return out
}
