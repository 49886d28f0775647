package backend

import (
	"context"
	"net/http"
	"net/url"

	"veriadmin/internal/backend/models"
)

// ListOrganizations returns organizations, optionally filtered by review
// status. An empty status lists all.
func (c *Client) ListOrganizations(ctx context.Context, status models.VerificationStatus) ([]models.Organization, error) {
	path := "/organizations"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	var out []models.Organization
	if err := c.do(ctx, "list_organizations", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (models.Organization, error) {
	var out models.Organization
	err := c.do(ctx, "get_organization", http.MethodGet, "/organizations/"+url.PathEscape(orgID), nil, &out)
	return out, err
}

// SetVerificationStatus records a review decision. reason is sent only for
// rejections.
func (c *Client) SetVerificationStatus(ctx context.Context, orgID string, status models.VerificationStatus, reason string) (models.Organization, error) {
	body := struct {
		Status models.VerificationStatus `json:"verificationStatus"`
		Reason string                    `json:"rejectionReason,omitempty"`
	}{Status: status}
	if status == models.VerificationRejected {
		body.Reason = reason
	}
	var out models.Organization
	path := "/organizations/" + url.PathEscape(orgID) + "/verification"
	err := c.do(ctx, "set_verification_status", http.MethodPatch, path, body, &out)
	return out, err
}
