package backend

import (
	"context"
	"net/http"
	"net/url"

	"veriadmin/internal/backend/models"
)

func locationsPath(orgID string) string {
	return "/organizations/" + url.PathEscape(orgID) + "/locations"
}

func (c *Client) CreateLocation(ctx context.Context, orgID string, loc models.Location) (models.Location, error) {
	var out models.Location
	err := c.do(ctx, "create_location", http.MethodPost, locationsPath(orgID), loc, &out)
	return out, err
}

func (c *Client) UpdateLocation(ctx context.Context, orgID, locationID string, loc models.Location) (models.Location, error) {
	var out models.Location
	path := locationsPath(orgID) + "/" + url.PathEscape(locationID)
	err := c.do(ctx, "update_location", http.MethodPut, path, loc, &out)
	return out, err
}

func (c *Client) DeleteLocation(ctx context.Context, orgID, locationID string) error {
	path := locationsPath(orgID) + "/" + url.PathEscape(locationID)
	return c.do(ctx, "delete_location", http.MethodDelete, path, nil, nil)
}

func (c *Client) ListLocations(ctx context.Context, orgID string) ([]models.Location, error) {
	var out []models.Location
	if err := c.do(ctx, "list_locations", http.MethodGet, locationsPath(orgID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
