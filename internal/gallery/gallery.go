// Package gallery manages the images and videos attached to a location,
// their derived prices and the bounded set shown publicly.
package gallery

import (
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	dErrors "veriadmin/pkg/domain-errors"
)

// MaxPublic is the most items a gallery may show publicly.
const MaxPublic = 10

var (
	ErrCapacityExceeded = dErrors.New(dErrors.CodeConflict, "at most 10 gallery items can be public")
	ErrItemNotFound     = dErrors.New(dErrors.CodeNotFound, "gallery item not found")
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

type Item struct {
	ID              string  `json:"id"`
	Kind            Kind    `json:"kind"`
	URL             string  `json:"url"`
	Caption         string  `json:"caption,omitempty"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discountPercent"`
	Public          bool    `json:"public"`
}

// EffectivePrice is the price less the discount, rounded to two decimals and
// never below zero.
func (it Item) EffectivePrice() float64 {
	p := it.Price * (1 - it.DiscountPercent/100)
	p = math.Round(p*100) / 100
	if p <= 0 {
		return 0
	}
	return p
}

func (it Item) validate() error {
	fields := map[string]string{}
	switch it.Kind {
	case KindImage, KindVideo:
	default:
		fields["kind"] = "Kind must be image or video"
	}
	if strings.TrimSpace(it.URL) == "" {
		fields["url"] = "URL is required"
	}
	if it.Price < 0 {
		fields["price"] = "Price must be 0 or greater"
	}
	if it.DiscountPercent < 0 || it.DiscountPercent > 100 {
		fields["discountPercent"] = "Discount must be between 0 and 100"
	}
	if len(fields) == 0 {
		return nil
	}
	return dErrors.NewValidation("invalid gallery item", fields)
}

// Gallery is an ordered list of items with at most MaxPublic public.
// It is not safe for concurrent use.
type Gallery struct {
	items []Item
}

// New builds a gallery from existing items. Items without an ID get one.
// Public flags past the cap are cleared in order.
func New(items []Item) (*Gallery, error) {
	g := &Gallery{}
	for _, it := range items {
		pub := it.Public
		it.Public = false
		added, err := g.Add(it)
		if err != nil {
			return nil, err
		}
		if pub {
			if err := g.Promote(added.ID); err != nil && !errors.Is(err, ErrCapacityExceeded) {
				return nil, err
			}
		}
	}
	return g, nil
}

// Add appends an item. A public item is rejected when the gallery is full.
func (g *Gallery) Add(it Item) (Item, error) {
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	if it.Public && g.publicCount() >= MaxPublic {
		return Item{}, ErrCapacityExceeded
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	} else if g.index(it.ID) >= 0 {
		return Item{}, dErrors.New(dErrors.CodeConflict, "gallery item already exists")
	}
	g.items = append(g.items, it)
	return it, nil
}

// Update replaces the editable fields of an item. Visibility changes go
// through Promote and Demote.
func (g *Gallery) Update(it Item) (Item, error) {
	i := g.index(it.ID)
	if i < 0 {
		return Item{}, ErrItemNotFound
	}
	it.Public = g.items[i].Public
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	g.items[i] = it
	return it, nil
}

func (g *Gallery) Remove(id string) error {
	i := g.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	g.items = slices.Delete(g.items, i, i+1)
	return nil
}

// Promote makes an item public. Promoting an already public item is a no-op.
func (g *Gallery) Promote(id string) error {
	i := g.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if g.items[i].Public {
		return nil
	}
	if g.publicCount() >= MaxPublic {
		return ErrCapacityExceeded
	}
	g.items[i].Public = true
	return nil
}

func (g *Gallery) Demote(id string) error {
	i := g.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	g.items[i].Public = false
	return nil
}

// Swap demotes one item and promotes another in a single step, so a full
// gallery can change which items are public. Nothing changes on error.
func (g *Gallery) Swap(promote, demote string) error {
	pi, di := g.index(promote), g.index(demote)
	if pi < 0 || di < 0 {
		return ErrItemNotFound
	}
	if pi == di {
		return nil
	}
	count := g.publicCount()
	if g.items[di].Public {
		count--
	}
	if !g.items[pi].Public && count >= MaxPublic {
		return ErrCapacityExceeded
	}
	g.items[di].Public = false
	g.items[pi].Public = true
	return nil
}

func (g *Gallery) Get(id string) (Item, bool) {
	i := g.index(id)
	if i < 0 {
		return Item{}, false
	}
	return g.items[i], true
}

// Items returns a copy of all items in order.
func (g *Gallery) Items() []Item {
	return slices.Clone(g.items)
}

// Public returns the public items in order.
func (g *Gallery) Public() []Item {
	var out []Item
	for _, it := range g.items {
		if it.Public {
			out = append(out, it)
		}
	}
	return out
}

// Split returns item URLs grouped by kind. Both slices are non-nil.
func (g *Gallery) Split() (images, videos []string) {
	images, videos = []string{}, []string{}
	for _, it := range g.items {
		if it.Kind == KindVideo {
			videos = append(videos, it.URL)
		} else {
			images = append(images, it.URL)
		}
	}
	return images, videos
}

func (g *Gallery) index(id string) int {
	return slices.IndexFunc(g.items, func(it Item) bool { return it.ID == id })
}

func (g *Gallery) publicCount() int {
	n := 0
	for _, it := range g.items {
		if it.Public {
			n++
		}
	}
	return n
}
