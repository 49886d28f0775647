package handler

import (
	"strings"

	"veriadmin/internal/backend/models"
	dErrors "veriadmin/pkg/domain-errors"
	strutil "veriadmin/pkg/platform/strings"
)

const maxReasonLength = 500

// VerificationRequest is the body of PATCH /organizations/{orgID}/verification.
type VerificationRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`

	parsedStatus models.VerificationStatus
}

func (r *VerificationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Reason) > maxReasonLength {
		return dErrors.NewValidation("reason is too long",
			map[string]string{"reason": "Reason must be at most 500 characters"})
	}
	status, err := models.ParseVerificationStatus(r.Status)
	if err != nil {
		return err
	}
	r.Reason = strutil.CollapseSpaces(r.Reason)
	if status == models.VerificationRejected && r.Reason == "" {
		return dErrors.NewValidation("a rejection needs a reason",
			map[string]string{"reason": "Reason is required"})
	}
	r.parsedStatus = status
	return nil
}

func (r *VerificationRequest) ParsedStatus() models.VerificationStatus {
	return r.parsedStatus
}

// PackageRequest is the body of POST and PUT /subscription-packages.
type PackageRequest struct {
	models.SubscriptionPackage
}

func (r *PackageRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	fields := map[string]string{}
	r.Name = strutil.CollapseSpaces(r.Name)
	if r.Name == "" {
		fields["name"] = "Name is required"
	}
	if r.Price < 0 {
		fields["price"] = "Price must not be negative"
	}
	if r.DurationDays <= 0 {
		fields["durationDays"] = "Duration must be at least one day"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("invalid subscription package", fields)
	}
	r.Description = strings.TrimSpace(r.Description)
	r.Features = strutil.DedupeFold(r.Features)
	return nil
}
