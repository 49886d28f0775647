package geography

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/countries.json
var bundledData []byte

// Country is the on-disk dataset shape. It is also what PostgresSource.Seed loads.
type Country struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	States []State `json:"states"`
}

type State struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// Bundled serves the dataset embedded in the binary. It is parsed lazily on
// first use and is read-only afterwards. The embedded data is a sample that
// covers a few countries; it also seeds an empty PostgresSource.
type Bundled struct {
	raw []byte

	once      sync.Once
	err       error
	countries []Country
	byCode    map[string]int
}

// NewBundled returns a Source over the embedded dataset.
func NewBundled() *Bundled {
	return &Bundled{raw: bundledData}
}

// NewBundledFromJSON returns a Source over raw dataset JSON.
func NewBundledFromJSON(raw []byte) *Bundled {
	return &Bundled{raw: raw}
}

func (b *Bundled) load() error {
	b.once.Do(func() {
		var countries []Country
		if err := json.Unmarshal(b.raw, &countries); err != nil {
			b.err = NewSourceError(ErrorBadData, "bundled", "parse dataset", err)
			return
		}
		byCode := make(map[string]int, len(countries))
		for i, c := range countries {
			if _, dup := byCode[c.Code]; dup {
				b.err = NewSourceError(ErrorBadData, "bundled", fmt.Sprintf("duplicate country code %q", c.Code), nil)
				return
			}
			byCode[c.Code] = i
		}
		b.countries = countries
		b.byCode = byCode
	})
	return b.err
}

// Countries returns the full parsed dataset.
func (b *Bundled) Countries() ([]Country, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	return b.countries, nil
}

func (b *Bundled) ListCountries(ctx context.Context) ([]Option, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(b.countries))
	for _, c := range b.countries {
		out = append(out, Option{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func (b *Bundled) ListStates(ctx context.Context, countryCode string) ([]Option, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	i, ok := b.byCode[countryCode]
	if !ok {
		return []Option{}, nil
	}
	states := b.countries[i].States
	out := make([]Option, 0, len(states))
	for _, s := range states {
		out = append(out, Option{Code: s.Code, Name: s.Name})
	}
	return out, nil
}

func (b *Bundled) ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	i, ok := b.byCode[countryCode]
	if !ok {
		return []Option{}, nil
	}
	for _, s := range b.countries[i].States {
		if s.Code == stateCode {
			return citiesFromNames(s.Cities), nil
		}
	}
	return []Option{}, nil
}
