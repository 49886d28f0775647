package handler

import (
	"veriadmin/internal/gallery"
	"veriadmin/internal/geography"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/models"
)

// SelectionResponse is returned by every selection event. Applied is false
// when the event was ignored because a parent level is unset.
type SelectionResponse struct {
	ID      string       `json:"id"`
	Profile string       `json:"profile"`
	Applied bool         `json:"applied"`
	View    cascade.View `json:"view"`
}

// OptionsResponse lists the options of one level filtered by the search text.
// Suggestions are near matches offered when the search matches nothing.
type OptionsResponse struct {
	Level       models.Level       `json:"level"`
	Mode        models.LevelMode   `json:"mode"`
	Loading     bool               `json:"loading"`
	Options     []geography.Option `json:"options"`
	Suggestions []geography.Option `json:"suggestions,omitempty"`
}

type GeographyResponse struct {
	Options []geography.Option `json:"options"`
}

type PreviewItem struct {
	gallery.Item
	EffectivePrice float64 `json:"effectivePrice"`
}

type GalleryPreviewResponse struct {
	Items       []PreviewItem `json:"items"`
	PublicCount int           `json:"publicCount"`
	PublicSlots int           `json:"publicSlots"`
	Images      []string      `json:"images"`
	Videos      []string      `json:"videos"`
}

func toPreview(g *gallery.Gallery) GalleryPreviewResponse {
	items := g.Items()
	resp := GalleryPreviewResponse{Items: make([]PreviewItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, PreviewItem{Item: it, EffectivePrice: it.EffectivePrice()})
	}
	resp.PublicCount = len(g.Public())
	resp.PublicSlots = gallery.MaxPublic - resp.PublicCount
	resp.Images, resp.Videos = g.Split()
	return resp
}

func orEmpty(opts []geography.Option) []geography.Option {
	if opts == nil {
		return []geography.Option{}
	}
	return opts
}
