// Package handler exposes location selections, the geography lists and the
// gallery preview over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"veriadmin/internal/audit"
	backendmodels "veriadmin/internal/backend/models"
	"veriadmin/internal/formbind"
	"veriadmin/internal/gallery"
	"veriadmin/internal/geography"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/models"
	"veriadmin/internal/location/session"
	"veriadmin/internal/submit"
	id "veriadmin/pkg/domain"
	dErrors "veriadmin/pkg/domain-errors"
	"veriadmin/pkg/platform/httputil"
	"veriadmin/pkg/platform/middleware/auth"
	"veriadmin/pkg/platform/sentinel"
	"veriadmin/pkg/requestcontext"
)

const (
	// suggestDistance is the edit distance allowed for "did you mean" hints.
	suggestDistance = 2
	// defaultSettleTimeout bounds how long an event waits for the lookups it
	// triggered before answering with loading levels.
	defaultSettleTimeout = 5 * time.Second
)

// Sessions stores open selections.
type Sessions interface {
	Put(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, selID id.SelectionID) (*session.Session, error)
	Delete(ctx context.Context, selID id.SelectionID)
}

// Submitter turns a selection and its form into a backend record.
type Submitter interface {
	SubmitLocation(ctx context.Context, sel submit.Selection, p formbind.Profile, req submit.LocationRequest) (backendmodels.Location, error)
	SubmitCityRegion(ctx context.Context, sel submit.Selection, p formbind.Profile, req submit.CityRegionRequest) (backendmodels.CityRegionSet, error)
	SubmitPricing(ctx context.Context, sel submit.Selection, p formbind.Profile, req submit.PricingRequest) (backendmodels.PricingRule, error)
	ResolveAddress(ctx context.Context, sel submit.Selection, p formbind.Profile) (models.Address, error)
}

// Flusher drops cached geography lists.
type Flusher interface {
	Flush()
}

// Handler wires selection endpoints to the cascade controller.
type Handler struct {
	sessions       Sessions
	source         geography.Source
	submitter      Submitter
	logger         *slog.Logger
	auditPublisher audit.Publisher
	flusher        Flusher
	controllerOpts []cascade.Option
	settleTimeout  time.Duration
}

type Option func(*Handler)

// WithControllerOptions configures every controller the handler opens.
func WithControllerOptions(opts ...cascade.Option) Option {
	return func(h *Handler) {
		h.controllerOpts = append(h.controllerOpts, opts...)
	}
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(h *Handler) {
		h.auditPublisher = p
	}
}

func WithFlusher(f Flusher) Option {
	return func(h *Handler) {
		h.flusher = f
	}
}

func WithSettleTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.settleTimeout = d
		}
	}
}

// New constructs a location handler with its dependencies.
func New(sessions Sessions, source geography.Source, submitter Submitter, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		sessions:      sessions,
		source:        source,
		submitter:     submitter,
		logger:        logger,
		settleTimeout: defaultSettleTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the authenticated endpoints. Callers put RequireAuth in
// front of the router.
func (h *Handler) Register(r chi.Router) {
	admin := auth.RequireRole(id.RoleAdmin, h.logger)

	r.Route("/selections", func(r chi.Router) {
		r.Post("/", h.HandleOpen)
		r.Route("/{selectionID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleDiscard)
			r.Put("/{level}", h.HandleSetLevel)
			r.Post("/manual/{level}", h.HandleToggleManual)
			r.Post("/dropdown/{level}", h.HandleOpenDropdown)
			r.Delete("/dropdown", h.HandleCloseDropdowns)
			r.Get("/options/{level}", h.HandleOptions)
			r.Post("/submit/location", h.HandleSubmitLocation)
			r.With(admin).Post("/submit/city-region", h.HandleSubmitCityRegion)
			r.With(admin).Post("/submit/pricing", h.HandleSubmitPricing)
			r.Post("/submit/verification", h.HandleSubmitVerification)
		})
	})

	r.Get("/geography/countries", h.HandleCountries)
	r.Get("/geography/countries/{countryCode}/states", h.HandleStates)
	r.Get("/geography/countries/{countryCode}/states/{stateCode}/cities", h.HandleCities)

	r.Post("/gallery/preview", h.HandleGalleryPreview)
}

// RegisterAdmin mounts operator endpoints. Callers put the admin token check
// in front of the router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/geography/flush", h.HandleFlushGeography)
}

// HandleOpen handles POST /selections.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[OpenSelectionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	profile := req.ParsedProfile()
	if err := authorizeProfile(ctx, profile); err != nil {
		httputil.WriteError(w, err)
		return
	}

	c := cascade.New(h.source, h.controllerOpts...)
	sess := &session.Session{
		Controller:     c,
		Profile:        profile,
		OwnerID:        requestcontext.UserID(ctx),
		OrganizationID: requestcontext.OrganizationID(ctx),
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := h.sessions.Put(ctx, sess); err != nil {
		h.logger.ErrorContext(ctx, "failed to store selection",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open selection"))
		return
	}
	c.Init(ctx)
	h.settle(ctx, c)

	h.emit(ctx, sess, audit.ActionSelectionOpened)
	h.logger.InfoContext(ctx, "selection opened",
		"request_id", requestID,
		"selection_id", sess.ID().String(),
		"profile", profile.Name,
	)
	httputil.WriteJSON(w, http.StatusCreated, selectionResponse(sess, true))
}

// HandleGet handles GET /selections/{selectionID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, selectionResponse(sess, true))
}

// HandleDiscard handles DELETE /selections/{selectionID}.
func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := sess.Controller.Discard(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.sessions.Delete(ctx, sess.ID())
	h.emit(ctx, sess, audit.ActionSelectionDiscarded)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetLevel handles PUT /selections/{selectionID}/{level}.
func (h *Handler) HandleSetLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	level, err := models.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetLevelRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c := sess.Controller
	var applied bool
	switch level {
	case models.LevelCountry:
		applied, err = c.SelectCountry(ctx, req.Value)
	case models.LevelState:
		applied, err = c.SelectState(ctx, req.Value)
	case models.LevelLGA:
		applied, err = c.SetLGA(req.Value)
	case models.LevelCity:
		applied, err = c.SelectCity(req.Value)
	case models.LevelCityRegion:
		applied, err = c.SetCityRegion(req.Value, req.Fee)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.settle(ctx, c)
	httputil.WriteJSON(w, http.StatusOK, selectionResponse(sess, applied))
}

// HandleToggleManual handles POST /selections/{selectionID}/manual/{level}.
func (h *Handler) HandleToggleManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, level, ok := h.loadLevel(w, r)
	if !ok {
		return
	}
	applied, err := sess.Controller.ToggleManual(ctx, level)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.settle(ctx, sess.Controller)
	httputil.WriteJSON(w, http.StatusOK, selectionResponse(sess, applied))
}

// HandleOpenDropdown handles POST /selections/{selectionID}/dropdown/{level}.
func (h *Handler) HandleOpenDropdown(w http.ResponseWriter, r *http.Request) {
	sess, level, ok := h.loadLevel(w, r)
	if !ok {
		return
	}
	applied := sess.Controller.OpenDropdown(level)
	httputil.WriteJSON(w, http.StatusOK, selectionResponse(sess, applied))
}

// HandleCloseDropdowns handles DELETE /selections/{selectionID}/dropdown.
func (h *Handler) HandleCloseDropdowns(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	sess.Controller.CloseDropdowns()
	httputil.WriteJSON(w, http.StatusOK, selectionResponse(sess, true))
}

// HandleOptions handles GET /selections/{selectionID}/options/{level}?q=.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, level, ok := h.loadLevel(w, r)
	if !ok {
		return
	}
	c := sess.Controller
	h.settle(ctx, c)

	q := r.URL.Query().Get("q")
	opts := c.Search(level, q)
	resp := OptionsResponse{
		Level:   level,
		Mode:    c.Mode(level),
		Loading: c.Loading(level),
		Options: orEmpty(opts),
	}
	if len(opts) == 0 && strings.TrimSpace(q) != "" {
		resp.Suggestions = geography.Suggest(c.Options(level), q, suggestDistance)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleSubmitLocation handles POST /selections/{selectionID}/submit/location.
func (h *Handler) HandleSubmitLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sess, ok := h.loadForm(w, r, formbind.ProfileNameLocation)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitLocationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := authorizeOrganization(ctx, req.OrganizationID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	loc, err := h.submitter.SubmitLocation(ctx, sess.Controller, sess.Profile, submit.LocationRequest{
		OrganizationID: req.OrganizationID,
		LocationID:     req.LocationID,
		Details:        req.Details,
		Gallery:        req.Gallery,
		Files:          req.ParsedFiles(),
	})
	if err != nil {
		h.submitFailed(ctx, w, sess, err)
		return
	}
	h.submitted(ctx, sess)
	httputil.WriteJSON(w, createdOrOK(req.LocationID), loc)
}

// HandleSubmitCityRegion handles POST /selections/{selectionID}/submit/city-region.
func (h *Handler) HandleSubmitCityRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sess, ok := h.loadForm(w, r, formbind.ProfileNameCityRegion)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitCityRegionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	set, err := h.submitter.SubmitCityRegion(ctx, sess.Controller, sess.Profile, submit.CityRegionRequest{ID: req.ID})
	if err != nil {
		h.submitFailed(ctx, w, sess, err)
		return
	}
	h.submitted(ctx, sess)
	httputil.WriteJSON(w, createdOrOK(req.ID), set)
}

// HandleSubmitPricing handles POST /selections/{selectionID}/submit/pricing.
func (h *Handler) HandleSubmitPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sess, ok := h.loadForm(w, r, formbind.ProfileNamePricing)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitPricingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rule, err := h.submitter.SubmitPricing(ctx, sess.Controller, sess.Profile, submit.PricingRequest{
		ID:      req.ID,
		Details: req.Details(),
	})
	if err != nil {
		h.submitFailed(ctx, w, sess, err)
		return
	}
	h.submitted(ctx, sess)
	httputil.WriteJSON(w, createdOrOK(req.ID), rule)
}

// HandleSubmitVerification handles POST /selections/{selectionID}/submit/verification.
// The caller stores the returned address in its verification record.
func (h *Handler) HandleSubmitVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.loadForm(w, r, formbind.ProfileNameVerification)
	if !ok {
		return
	}
	addr, err := h.submitter.ResolveAddress(ctx, sess.Controller, sess.Profile)
	if err != nil {
		h.submitFailed(ctx, w, sess, err)
		return
	}
	h.submitted(ctx, sess)
	httputil.WriteJSON(w, http.StatusOK, addr)
}

// HandleCountries handles GET /geography/countries.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	h.writeOptions(w, r, func(ctx context.Context) ([]geography.Option, error) {
		return h.source.ListCountries(ctx)
	})
}

// HandleStates handles GET /geography/countries/{countryCode}/states.
func (h *Handler) HandleStates(w http.ResponseWriter, r *http.Request) {
	cc := chi.URLParam(r, "countryCode")
	h.writeOptions(w, r, func(ctx context.Context) ([]geography.Option, error) {
		return h.source.ListStates(ctx, cc)
	})
}

// HandleCities handles GET /geography/countries/{countryCode}/states/{stateCode}/cities.
func (h *Handler) HandleCities(w http.ResponseWriter, r *http.Request) {
	cc, sc := chi.URLParam(r, "countryCode"), chi.URLParam(r, "stateCode")
	h.writeOptions(w, r, func(ctx context.Context) ([]geography.Option, error) {
		return h.source.ListCities(ctx, cc, sc)
	})
}

// HandleGalleryPreview handles POST /gallery/preview.
func (h *Handler) HandleGalleryPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[GalleryPreviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	g, err := gallery.New(req.Items)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	switch {
	case req.Promote != "" && req.Demote != "":
		err = g.Swap(req.Promote, req.Demote)
	case req.Promote != "":
		err = g.Promote(req.Promote)
	case req.Demote != "":
		err = g.Demote(req.Demote)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPreview(g))
}

// HandleFlushGeography handles POST /admin/geography/flush.
func (h *Handler) HandleFlushGeography(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.flusher == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "geography cache is not enabled"))
		return
	}
	h.flusher.Flush()
	h.logger.InfoContext(ctx, "geography cache flushed",
		"request_id", requestcontext.RequestID(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

// load resolves the selection in the URL. Selections of other users are
// reported as missing unless the caller is an admin.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	ctx := r.Context()
	selID, err := id.ParseSelectionID(chi.URLParam(r, "selectionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	sess, err := h.sessions.Get(ctx, selID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			h.logger.ErrorContext(ctx, "failed to load selection",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "selection not found"))
		return nil, false
	}
	if sess.OwnerID != requestcontext.UserID(ctx) && !requestcontext.Role(ctx).AtLeast(id.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "selection not found"))
		return nil, false
	}
	return sess, true
}

func (h *Handler) loadLevel(w http.ResponseWriter, r *http.Request) (*session.Session, models.Level, bool) {
	sess, ok := h.load(w, r)
	if !ok {
		return nil, "", false
	}
	level, err := models.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, "", false
	}
	return sess, level, true
}

// loadForm loads a selection that was opened for the named form.
func (h *Handler) loadForm(w http.ResponseWriter, r *http.Request, profile string) (*session.Session, bool) {
	sess, ok := h.load(w, r)
	if !ok {
		return nil, false
	}
	if sess.Profile.Name != profile {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict,
			"selection was opened for the "+sess.Profile.Name+" form"))
		return nil, false
	}
	// lookups still running would change the snapshot under the submission
	h.settle(r.Context(), sess.Controller)
	return sess, true
}

// settle waits for lookups the event triggered. Running out of time is not
// an error; the response then shows the level as loading.
func (h *Handler) settle(ctx context.Context, c *cascade.Controller) {
	wctx, cancel := context.WithTimeout(ctx, h.settleTimeout)
	defer cancel()
	_ = c.WaitContext(wctx)
}

func (h *Handler) writeOptions(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]geography.Option, error)) {
	ctx := r.Context()
	opts, err := list(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "geography lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "geography data is unavailable"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GeographyResponse{Options: orEmpty(opts)})
}

func (h *Handler) submitted(ctx context.Context, sess *session.Session) {
	h.sessions.Delete(ctx, sess.ID())
	h.logger.InfoContext(ctx, "selection submitted",
		"request_id", requestcontext.RequestID(ctx),
		"selection_id", sess.ID().String(),
		"profile", sess.Profile.Name,
	)
}

// submitFailed keeps the selection open so the form can be corrected and
// sent again.
func (h *Handler) submitFailed(ctx context.Context, w http.ResponseWriter, sess *session.Session, err error) {
	h.logger.InfoContext(ctx, "submission rejected",
		"request_id", requestcontext.RequestID(ctx),
		"selection_id", sess.ID().String(),
		"profile", sess.Profile.Name,
		"error", err,
	)
	httputil.WriteError(w, err)
}

func (h *Handler) emit(ctx context.Context, sess *session.Session, action audit.Action) {
	if h.auditPublisher == nil {
		return
	}
	e := audit.NewEvent(ctx, action)
	e.SelectionID = sess.ID().String()
	e.Profile = sess.Profile.Name
	if err := h.auditPublisher.Emit(ctx, e); err != nil {
		h.logger.WarnContext(ctx, "failed to record audit event",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(action),
			"error", err,
		)
	}
}

// authorizeProfile restricts the management forms to admins.
func authorizeProfile(ctx context.Context, p formbind.Profile) error {
	switch p.Name {
	case formbind.ProfileNameCityRegion, formbind.ProfileNamePricing:
		if !requestcontext.Role(ctx).AtLeast(id.RoleAdmin) {
			return dErrors.New(dErrors.CodeForbidden, "only admins can manage "+strings.ReplaceAll(p.Name, "_", " ")+" records")
		}
	}
	return nil
}

// authorizeOrganization lets staff and above write any organization's
// locations. End users may only write their own.
func authorizeOrganization(ctx context.Context, orgID string) error {
	role := requestcontext.Role(ctx)
	if role.AtLeast(id.RoleStaff) {
		return nil
	}
	if role == id.RoleEndUser && orgID == requestcontext.OrganizationID(ctx).String() {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "not allowed to manage locations of this organization")
}

func selectionResponse(sess *session.Session, applied bool) SelectionResponse {
	return SelectionResponse{
		ID:      sess.ID().String(),
		Profile: sess.Profile.Name,
		Applied: applied,
		View:    sess.Controller.View(),
	}
}

func createdOrOK(existingID string) int {
	if existingID == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
