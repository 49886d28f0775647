package backend

import (
	"context"
	"net/http"
	"net/url"

	"veriadmin/internal/backend/models"
)

const cityRegionsPath = "/city-regions"

// CreateCityRegions adds every region of set under its city.
func (c *Client) CreateCityRegions(ctx context.Context, set models.CityRegionSet) (models.CityRegionSet, error) {
	var out legacyCityRegion
	if err := c.do(ctx, "create_city_regions", http.MethodPost, cityRegionsPath, toLegacyCreate(set), &out); err != nil {
		return models.CityRegionSet{}, err
	}
	return fromLegacy(out), nil
}

// UpdateCityRegion edits the region document set.ID with set's first region.
func (c *Client) UpdateCityRegion(ctx context.Context, set models.CityRegionSet) (models.CityRegionSet, error) {
	var out legacyCityRegion
	path := cityRegionsPath + "/" + url.PathEscape(set.ID)
	if err := c.do(ctx, "update_city_region", http.MethodPut, path, toLegacyUpdate(set), &out); err != nil {
		return models.CityRegionSet{}, err
	}
	return fromLegacy(out), nil
}

func (c *Client) DeleteCityRegion(ctx context.Context, regionID string) error {
	return c.do(ctx, "delete_city_region", http.MethodDelete, cityRegionsPath+"/"+url.PathEscape(regionID), nil, nil)
}

func (c *Client) ListCityRegions(ctx context.Context) ([]models.CityRegionSet, error) {
	var raw []legacyCityRegion
	if err := c.do(ctx, "list_city_regions", http.MethodGet, cityRegionsPath, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.CityRegionSet, 0, len(raw))
	for _, r := range raw {
		out = append(out, fromLegacy(r))
	}
	return out, nil
}
