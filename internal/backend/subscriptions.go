package backend

import (
	"context"
	"net/http"
	"net/url"

	"veriadmin/internal/backend/models"
)

const packagesPath = "/subscription-packages"

func (c *Client) ListPackages(ctx context.Context) ([]models.SubscriptionPackage, error) {
	var out []models.SubscriptionPackage
	if err := c.do(ctx, "list_packages", http.MethodGet, packagesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePackage(ctx context.Context, pkg models.SubscriptionPackage) (models.SubscriptionPackage, error) {
	var out models.SubscriptionPackage
	err := c.do(ctx, "create_package", http.MethodPost, packagesPath, pkg, &out)
	return out, err
}

func (c *Client) UpdatePackage(ctx context.Context, packageID string, pkg models.SubscriptionPackage) (models.SubscriptionPackage, error) {
	var out models.SubscriptionPackage
	err := c.do(ctx, "update_package", http.MethodPut, packagesPath+"/"+url.PathEscape(packageID), pkg, &out)
	return out, err
}

func (c *Client) DeletePackage(ctx context.Context, packageID string) error {
	return c.do(ctx, "delete_package", http.MethodDelete, packagesPath+"/"+url.PathEscape(packageID), nil, nil)
}
