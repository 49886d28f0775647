package backend

import (
	"context"
	"net/http"
	"net/url"

	"veriadmin/internal/backend/models"
)

const pricingPath = "/default-pricing"

func (c *Client) CreatePricing(ctx context.Context, rule models.PricingRule) (models.PricingRule, error) {
	var out models.PricingRule
	err := c.do(ctx, "create_pricing", http.MethodPost, pricingPath, rule, &out)
	return out, err
}

func (c *Client) UpdatePricing(ctx context.Context, ruleID string, rule models.PricingRule) (models.PricingRule, error) {
	var out models.PricingRule
	err := c.do(ctx, "update_pricing", http.MethodPut, pricingPath+"/"+url.PathEscape(ruleID), rule, &out)
	return out, err
}

func (c *Client) DeletePricing(ctx context.Context, ruleID string) error {
	return c.do(ctx, "delete_pricing", http.MethodDelete, pricingPath+"/"+url.PathEscape(ruleID), nil, nil)
}

func (c *Client) ListPricing(ctx context.Context) ([]models.PricingRule, error) {
	var out []models.PricingRule
	if err := c.do(ctx, "list_pricing", http.MethodGet, pricingPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
