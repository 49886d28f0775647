// Package handler exposes the backend records admins manage outside the
// location forms: organization review, stored locations, city regions,
// default pricing and subscription packages.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veriadmin/internal/audit"
	"veriadmin/internal/backend"
	"veriadmin/internal/backend/models"
	id "veriadmin/pkg/domain"
	"veriadmin/pkg/platform/httputil"
	"veriadmin/pkg/requestcontext"
)

// Backend is the slice of the REST client these endpoints use.
type Backend interface {
	ListOrganizations(ctx context.Context, status models.VerificationStatus) ([]models.Organization, error)
	GetOrganization(ctx context.Context, orgID string) (models.Organization, error)
	SetVerificationStatus(ctx context.Context, orgID string, status models.VerificationStatus, reason string) (models.Organization, error)
	ListLocations(ctx context.Context, orgID string) ([]models.Location, error)
	DeleteLocation(ctx context.Context, orgID, locationID string) error
	ListCityRegions(ctx context.Context) ([]models.CityRegionSet, error)
	DeleteCityRegion(ctx context.Context, regionID string) error
	ListPricing(ctx context.Context) ([]models.PricingRule, error)
	DeletePricing(ctx context.Context, ruleID string) error
	ListPackages(ctx context.Context) ([]models.SubscriptionPackage, error)
	CreatePackage(ctx context.Context, pkg models.SubscriptionPackage) (models.SubscriptionPackage, error)
	UpdatePackage(ctx context.Context, packageID string, pkg models.SubscriptionPackage) (models.SubscriptionPackage, error)
	DeletePackage(ctx context.Context, packageID string) error
}

type Handler struct {
	backend        Backend
	logger         *slog.Logger
	auditPublisher audit.Publisher
}

func New(b Backend, logger *slog.Logger, auditPublisher audit.Publisher) *Handler {
	return &Handler{backend: b, logger: logger, auditPublisher: auditPublisher}
}

// Register mounts the endpoints. Callers restrict the router to admins.
func (h *Handler) Register(r chi.Router) {
	r.Get("/organizations", h.HandleListOrganizations)
	r.Get("/organizations/{orgID}", h.HandleGetOrganization)
	r.Patch("/organizations/{orgID}/verification", h.HandleSetVerification)
	r.Get("/organizations/{orgID}/locations", h.HandleListLocations)
	r.Delete("/organizations/{orgID}/locations/{locationID}", h.HandleDeleteLocation)

	r.Get("/city-regions", h.HandleListCityRegions)
	r.Delete("/city-regions/{regionID}", h.HandleDeleteCityRegion)

	r.Get("/default-pricing", h.HandleListPricing)
	r.Delete("/default-pricing/{ruleID}", h.HandleDeletePricing)

	r.Get("/subscription-packages", h.HandleListPackages)
	r.Post("/subscription-packages", h.HandleCreatePackage)
	r.Put("/subscription-packages/{packageID}", h.HandleUpdatePackage)
	r.Delete("/subscription-packages/{packageID}", h.HandleDeletePackage)
}

// HandleListOrganizations handles GET /organizations?status=.
func (h *Handler) HandleListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var status models.VerificationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseVerificationStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		status = parsed
	}
	orgs, err := h.backend.ListOrganizations(ctx, status)
	if err != nil {
		h.fail(ctx, w, "list organizations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(orgs))
}

// HandleGetOrganization handles GET /organizations/{orgID}.
func (h *Handler) HandleGetOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	org, err := h.backend.GetOrganization(ctx, orgID)
	if err != nil {
		h.fail(ctx, w, "get organization", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, org)
}

// HandleSetVerification handles PATCH /organizations/{orgID}/verification.
func (h *Handler) HandleSetVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerificationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	org, err := h.backend.SetVerificationStatus(ctx, orgID, req.ParsedStatus(), req.Reason)
	if err != nil {
		h.fail(ctx, w, "set verification status", err)
		return
	}

	if h.auditPublisher != nil {
		e := audit.NewEvent(ctx, audit.ActionOrganizationChecked)
		e.ResourceID = orgID
		e.Reason = string(req.ParsedStatus())
		if req.Reason != "" {
			e.Reason += ": " + req.Reason
		}
		if err := h.auditPublisher.Emit(ctx, e); err != nil {
			h.logger.WarnContext(ctx, "failed to record audit event",
				"request_id", requestID,
				"action", string(e.Action),
				"error", err,
			)
		}
	}
	h.logger.InfoContext(ctx, "organization reviewed",
		"request_id", requestID,
		"organization_id", orgID,
		"status", string(req.ParsedStatus()),
	)
	httputil.WriteJSON(w, http.StatusOK, org)
}

// HandleListLocations handles GET /organizations/{orgID}/locations.
func (h *Handler) HandleListLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	locs, err := h.backend.ListLocations(ctx, orgID)
	if err != nil {
		h.fail(ctx, w, "list locations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(locs))
}

// HandleDeleteLocation handles DELETE /organizations/{orgID}/locations/{locationID}.
func (h *Handler) HandleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	locationID := chi.URLParam(r, "locationID")
	h.delete(w, r, "delete location", func(ctx context.Context) error {
		return h.backend.DeleteLocation(ctx, orgID, locationID)
	})
}

// HandleListCityRegions handles GET /city-regions.
func (h *Handler) HandleListCityRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sets, err := h.backend.ListCityRegions(ctx)
	if err != nil {
		h.fail(ctx, w, "list city regions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(sets))
}

// HandleDeleteCityRegion handles DELETE /city-regions/{regionID}.
func (h *Handler) HandleDeleteCityRegion(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "regionID")
	h.delete(w, r, "delete city region", func(ctx context.Context) error {
		return h.backend.DeleteCityRegion(ctx, regionID)
	})
}

// HandleListPricing handles GET /default-pricing.
func (h *Handler) HandleListPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rules, err := h.backend.ListPricing(ctx)
	if err != nil {
		h.fail(ctx, w, "list pricing", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(rules))
}

// HandleDeletePricing handles DELETE /default-pricing/{ruleID}.
func (h *Handler) HandleDeletePricing(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleID")
	h.delete(w, r, "delete pricing", func(ctx context.Context) error {
		return h.backend.DeletePricing(ctx, ruleID)
	})
}

// HandleListPackages handles GET /subscription-packages.
func (h *Handler) HandleListPackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pkgs, err := h.backend.ListPackages(ctx)
	if err != nil {
		h.fail(ctx, w, "list packages", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orEmpty(pkgs))
}

// HandleCreatePackage handles POST /subscription-packages.
func (h *Handler) HandleCreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PackageRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	pkg, err := h.backend.CreatePackage(ctx, req.SubscriptionPackage)
	if err != nil {
		h.fail(ctx, w, "create package", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, pkg)
}

// HandleUpdatePackage handles PUT /subscription-packages/{packageID}.
func (h *Handler) HandleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PackageRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	pkg, err := h.backend.UpdatePackage(ctx, chi.URLParam(r, "packageID"), req.SubscriptionPackage)
	if err != nil {
		h.fail(ctx, w, "update package", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pkg)
}

// HandleDeletePackage handles DELETE /subscription-packages/{packageID}.
func (h *Handler) HandleDeletePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")
	h.delete(w, r, "delete package", func(ctx context.Context) error {
		return h.backend.DeletePackage(ctx, packageID)
	})
}

func (h *Handler) orgID(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID, err := id.ParseOrganizationID(chi.URLParam(r, "orgID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return orgID.String(), true
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, op string, del func(context.Context) error) {
	ctx := r.Context()
	if err := del(ctx); err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail reports a backend failure in the same terms the forms use.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	h.logger.WarnContext(ctx, "backend call failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err,
	)
	httputil.WriteError(w, backend.TranslateError(err))
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
