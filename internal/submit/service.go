// Package submit turns a finished selection plus its form into a backend
// record: validate, upload gallery files, call the backend, record the
// outcome and close the selection.
package submit

import (
	"context"
	"log/slog"

	"veriadmin/internal/audit"
	"veriadmin/internal/backend"
	backendmodels "veriadmin/internal/backend/models"
	"veriadmin/internal/formbind"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/models"
	"veriadmin/internal/media"
	"veriadmin/pkg/requestcontext"
)

type Backend interface {
	CreateLocation(ctx context.Context, orgID string, loc backendmodels.Location) (backendmodels.Location, error)
	UpdateLocation(ctx context.Context, orgID, locationID string, loc backendmodels.Location) (backendmodels.Location, error)
	CreateCityRegions(ctx context.Context, set backendmodels.CityRegionSet) (backendmodels.CityRegionSet, error)
	UpdateCityRegion(ctx context.Context, set backendmodels.CityRegionSet) (backendmodels.CityRegionSet, error)
	CreatePricing(ctx context.Context, rule backendmodels.PricingRule) (backendmodels.PricingRule, error)
	UpdatePricing(ctx context.Context, ruleID string, rule backendmodels.PricingRule) (backendmodels.PricingRule, error)
}

type Uploader interface {
	UploadAll(ctx context.Context, files []media.File) []media.Uploaded
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event) error
}

// Selection is the part of a cascade controller a submission needs.
type Selection interface {
	Snapshot() models.Snapshot
	Submit() (models.Snapshot, error)
}

// LocationRequest carries the non-location fields of a branch form.
// Gallery holds URLs uploaded earlier; Files are uploaded now and appended.
type LocationRequest struct {
	OrganizationID string
	LocationID     string
	Details        formbind.Details
	Gallery        backendmodels.Gallery
	Files          []media.File
}

// CityRegionRequest updates the region document ID when set, otherwise
// creates one.
type CityRegionRequest struct {
	ID string
}

type PricingRequest struct {
	ID      string
	Details formbind.Details
}

// Service orchestrates form submissions.
type Service struct {
	backend        Backend
	uploader       Uploader
	auditPublisher AuditPublisher
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func New(b Backend, u Uploader, opts ...Option) *Service {
	s := &Service{backend: b, uploader: u, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitLocation creates or updates an organization branch.
func (s *Service) SubmitLocation(ctx context.Context, sel Selection, p formbind.Profile, req LocationRequest) (backendmodels.Location, error) {
	snap, form, err := s.prepare(sel, p, req.Details)
	if err != nil {
		return backendmodels.Location{}, err
	}

	gallery := req.Gallery
	images, videos := media.Split(s.uploader.UploadAll(ctx, req.Files))
	gallery.Images = append(append([]string{}, gallery.Images...), images...)
	gallery.Videos = append(append([]string{}, gallery.Videos...), videos...)

	record := formbind.ToLocation(form, req.OrganizationID, gallery)
	var saved backendmodels.Location
	if req.LocationID == "" {
		saved, err = s.backend.CreateLocation(ctx, req.OrganizationID, record)
	} else {
		saved, err = s.backend.UpdateLocation(ctx, req.OrganizationID, req.LocationID, record)
	}
	if err != nil {
		return backendmodels.Location{}, s.rejected(ctx, snap, p, err)
	}
	s.succeeded(ctx, sel, snap, p, audit.ActionLocationSubmitted, saved.ID)
	return saved, nil
}

// SubmitCityRegion creates or updates a region under the selected city.
func (s *Service) SubmitCityRegion(ctx context.Context, sel Selection, p formbind.Profile, req CityRegionRequest) (backendmodels.CityRegionSet, error) {
	snap, form, err := s.prepare(sel, p, formbind.Details{})
	if err != nil {
		return backendmodels.CityRegionSet{}, err
	}

	set := formbind.ToCityRegionSet(form)
	var saved backendmodels.CityRegionSet
	if req.ID == "" {
		saved, err = s.backend.CreateCityRegions(ctx, set)
	} else {
		set.ID = req.ID
		saved, err = s.backend.UpdateCityRegion(ctx, set)
	}
	if err != nil {
		return backendmodels.CityRegionSet{}, s.rejected(ctx, snap, p, err)
	}
	s.succeeded(ctx, sel, snap, p, audit.ActionCityRegionSubmitted, saved.ID)
	return saved, nil
}

// SubmitPricing creates or updates a default-pricing rule at the profile's
// level.
func (s *Service) SubmitPricing(ctx context.Context, sel Selection, p formbind.Profile, req PricingRequest) (backendmodels.PricingRule, error) {
	snap, form, err := s.prepare(sel, p, req.Details)
	if err != nil {
		return backendmodels.PricingRule{}, err
	}

	rule := formbind.ToPricingRule(p, form, req.Details.IsActive)
	var saved backendmodels.PricingRule
	if req.ID == "" {
		saved, err = s.backend.CreatePricing(ctx, rule)
	} else {
		saved, err = s.backend.UpdatePricing(ctx, req.ID, rule)
	}
	if err != nil {
		return backendmodels.PricingRule{}, s.rejected(ctx, snap, p, err)
	}
	s.succeeded(ctx, sel, snap, p, audit.ActionPricingSubmitted, saved.ID)
	return saved, nil
}

// ResolveAddress validates a selection for a form that saves the address
// itself and returns the flat record.
func (s *Service) ResolveAddress(ctx context.Context, sel Selection, p formbind.Profile) (models.Address, error) {
	snap, form, err := s.prepare(sel, p, formbind.Details{})
	if err != nil {
		return models.Address{}, err
	}
	addr := formbind.ToAddress(p, form, snap)
	s.succeeded(ctx, sel, snap, p, audit.ActionAddressResolved, "")
	return addr, nil
}

// prepare binds and validates the form. Nothing leaves the process when it
// fails.
func (s *Service) prepare(sel Selection, p formbind.Profile, d formbind.Details) (models.Snapshot, formbind.Form, error) {
	snap := sel.Snapshot()
	if snap.Status.IsTerminal() {
		return snap, formbind.Form{}, cascade.ErrTerminated
	}
	form := formbind.Bind(p, snap, d)
	if err := formbind.Validate(p, form); err != nil {
		return snap, formbind.Form{}, err
	}
	return snap, form, nil
}

func (s *Service) rejected(ctx context.Context, snap models.Snapshot, p formbind.Profile, err error) error {
	translated := backend.TranslateError(err)
	e := audit.NewEvent(ctx, audit.ActionSubmissionRejected)
	e.SelectionID = snap.ID.String()
	e.Profile = p.Name
	e.Reason = translated.Error()
	s.emit(ctx, e)
	return translated
}

// succeeded records the outcome and closes the selection. The record is
// already saved, so a selection that was discarded meanwhile is only logged.
func (s *Service) succeeded(ctx context.Context, sel Selection, snap models.Snapshot, p formbind.Profile, action audit.Action, resourceID string) {
	e := audit.NewEvent(ctx, action)
	e.SelectionID = snap.ID.String()
	e.Profile = p.Name
	e.ResourceID = resourceID
	s.emit(ctx, e)

	if _, err := sel.Submit(); err != nil {
		s.logger.WarnContext(ctx, "selection closed before submit completed",
			"request_id", requestcontext.RequestID(ctx),
			"selection_id", snap.ID.String(),
			"error", err,
		)
	}
}

func (s *Service) emit(ctx context.Context, e audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(e.Action),
			"error", err,
		)
	}
}
