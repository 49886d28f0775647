package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"veriadmin/internal/geography"
	"veriadmin/internal/location/metrics"
	"veriadmin/internal/location/models"
	id "veriadmin/pkg/domain"
	dErrors "veriadmin/pkg/domain-errors"
)

// DefaultLookupTimeout bounds a single dataset lookup. A lookup that runs
// out of time switches its level to manual entry.
const DefaultLookupTimeout = 3 * time.Second

var (
	ErrTerminated  = dErrors.New(dErrors.CodeConflict, "selection has already been submitted or discarded")
	ErrNegativeFee = dErrors.NewValidation("city region fee must not be negative",
		map[string]string{"cityRegionFee": "Fee must not be negative"})
)

// Controller applies user events to one selection and keeps its option lists
// in step with the selected parents.
type Controller struct {
	id            id.SelectionID
	source        geography.Source
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	lookupTimeout time.Duration
	now           func() time.Time

	mu    sync.Mutex
	state *State
	// gen is bumped every time a level's list is requested or dropped; a
	// lookup result is applied only while its generation is current.
	gen      map[models.Level]uint64
	inflight sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithLookupTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.lookupTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithID(selID id.SelectionID) Option {
	return func(c *Controller) {
		c.id = selID
	}
}

// New creates an empty selection. Call Init to load the country list.
func New(source geography.Source, opts ...Option) *Controller {
	c := &Controller{
		id:            id.NewSelectionID(),
		source:        source,
		logger:        slog.Default(),
		tracer:        otel.Tracer("veriadmin/location/cascade"),
		lookupTimeout: DefaultLookupTimeout,
		now:           time.Now,
		state:         newState(),
		gen:           map[models.Level]uint64{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ID() id.SelectionID {
	return c.id
}

// Init requests the country list.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueLocked(ctx, models.LevelCountry)
}

// SelectCountry resolves input against the country list (by code or name)
// and empties every other level. Blank input clears the country.
func (c *Controller) SelectCountry(ctx context.Context, input string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	st := c.state
	v, err := c.resolveLocked(models.LevelCountry, input)
	if err != nil {
		return false, err
	}

	st.sel.Country = v
	st.clearBelow(models.LevelCountry, true)
	st.picked(models.LevelCountry)
	c.dropLocked(models.LevelState)
	c.dropLocked(models.LevelCity)
	if v.IsDataset() {
		c.issueLocked(ctx, models.LevelState)
	}
	return true, nil
}

// SelectState resolves input against the states of the selected country and
// empties lga, city and city region. It does nothing while no country is set.
func (c *Controller) SelectState(ctx context.Context, input string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	st := c.state
	if !st.enabled(models.LevelState) {
		return false, nil
	}
	v, err := c.resolveLocked(models.LevelState, input)
	if err != nil {
		return false, err
	}

	st.sel.State = v
	st.clearBelow(models.LevelState, false)
	st.picked(models.LevelState)
	c.dropLocked(models.LevelCity)
	if v.IsDataset() && st.sel.Country.IsDataset() {
		c.issueLocked(ctx, models.LevelCity)
	}
	return true, nil
}

// SetLGA stores free text for the LGA. Any string is accepted once a state is
// set; nothing else changes.
func (c *Controller) SetLGA(text string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	if !c.state.enabled(models.LevelLGA) {
		return false, nil
	}
	c.state.sel.LGA = models.FreeText(text)
	return true, nil
}

// SelectCity resolves input against the cities of the selected state and
// empties the city region and its fee.
func (c *Controller) SelectCity(input string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	st := c.state
	if !st.enabled(models.LevelCity) {
		return false, nil
	}
	v, err := c.resolveLocked(models.LevelCity, input)
	if err != nil {
		return false, err
	}
	st.sel.City = v
	st.clearBelow(models.LevelCity, false)
	st.picked(models.LevelCity)
	return true, nil
}

// SetCityRegion stores free text for the city region with an optional fee.
// Blank text clears both.
func (c *Controller) SetCityRegion(text string, fee *float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	st := c.state
	if !st.enabled(models.LevelCityRegion) {
		return false, nil
	}
	if fee != nil && *fee < 0 {
		return false, ErrNegativeFee
	}
	st.sel.CityRegion = models.FreeText(text)
	st.sel.CityRegionFee = nil
	if fee != nil && !st.sel.CityRegion.IsEmpty() {
		f := *fee
		st.sel.CityRegionFee = &f
	}
	return true, nil
}

// ToggleManual flips level between dataset selection and free text. Each flip
// clears the level and everything below it. Leaving manual entry re-requests
// the level's list when it is empty, e.g. after a lookup timeout.
func (c *Controller) ToggleManual(ctx context.Context, level models.Level) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return false, err
	}
	st := c.state
	if !st.enabled(level) {
		return false, nil
	}

	manual := !st.sel.Manual[level]
	if manual {
		st.sel.Manual[level] = true
	} else {
		delete(st.sel.Manual, level)
	}
	st.sel.Clear(level)
	st.clearBelow(level, true)
	st.picked(level)

	switch level {
	case models.LevelCountry:
		c.dropLocked(models.LevelState)
		c.dropLocked(models.LevelCity)
	case models.LevelState:
		c.dropLocked(models.LevelCity)
	}
	if !manual && level.IsDataset() && !st.manual(level) && len(st.options(level)) == 0 {
		c.issueLocked(ctx, level)
	}
	return true, nil
}

// Search records the search text for a dataset level and returns the
// matching options in dataset order. Countries match on code or name;
// states and cities on name. Free-text levels have no options.
func (c *Controller) Search(level models.Level, text string) []geography.Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !level.IsDataset() {
		return nil
	}
	c.state.search[level] = text
	return slices.Clone(geography.Filter(c.state.options(level), text, level == models.LevelCountry))
}

// Options returns the full list for level without touching the search text.
func (c *Controller) Options(level models.Level) []geography.Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.options(level))
}

// OpenDropdown opens the dropdown of a dataset level, closing any other.
// It returns false when the level is not in dataset selection mode.
func (c *Controller) OpenDropdown(level models.Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.status.IsTerminal() || c.state.mode(level) != models.ModeDatasetSelect {
		return false
	}
	c.state.open = level
	return true
}

func (c *Controller) CloseDropdowns() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.open = ""
}

// OpenDropdownLevel returns the level whose dropdown is open, or "".
func (c *Controller) OpenDropdownLevel() models.Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.open
}

func (c *Controller) Mode(level models.Level) models.LevelMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.mode(level)
}

func (c *Controller) Loading(level models.Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.loading[level]
}

func (c *Controller) SearchText(level models.Level) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.search[level]
}

func (c *Controller) Status() models.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.status
}

func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// LevelView is the presentation state of one level.
type LevelView struct {
	Level   models.Level     `json:"level"`
	Mode    models.LevelMode `json:"mode"`
	Value   models.Value     `json:"value"`
	Loading bool             `json:"loading"`
	Search  string           `json:"search,omitempty"`
	Options int              `json:"option_count"`
}

// View is a consistent read of the whole form.
type View struct {
	Snapshot     models.Snapshot `json:"selection"`
	Levels       []LevelView     `json:"levels"`
	OpenDropdown models.Level    `json:"open_dropdown,omitempty"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	v := View{Snapshot: c.snapshotLocked(), OpenDropdown: st.open}
	for _, l := range models.Levels {
		v.Levels = append(v.Levels, LevelView{
			Level:   l,
			Mode:    st.mode(l),
			Value:   st.sel.Get(l),
			Loading: st.loading[l],
			Search:  st.search[l],
			Options: len(st.options(l)),
		})
	}
	return v
}

// Submit ends the selection and returns its final snapshot.
func (c *Controller) Submit() (models.Snapshot, error) {
	return c.finish(models.StatusSubmitted)
}

// Discard ends the selection without submitting it.
func (c *Controller) Discard() error {
	_, err := c.finish(models.StatusDiscarded)
	return err
}

func (c *Controller) finish(status models.Status) (models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.activeLocked(); err != nil {
		return models.Snapshot{}, err
	}
	c.state.status = status
	c.state.open = ""
	return c.snapshotLocked(), nil
}

// Wait blocks until every lookup issued so far has been applied or dropped.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// WaitContext is Wait bounded by ctx.
func (c *Controller) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) activeLocked() error {
	if c.state.status.IsTerminal() {
		return ErrTerminated
	}
	return nil
}

func (c *Controller) snapshotLocked() models.Snapshot {
	return models.NewSnapshot(c.id, c.state.status, c.state.sel, c.now())
}

func (c *Controller) resolveLocked(level models.Level, input string) (models.Value, error) {
	if strings.TrimSpace(input) == "" {
		return models.Empty(), nil
	}
	if c.state.manual(level) {
		return models.FreeText(input), nil
	}
	opt, ok := geography.Find(c.state.options(level), input, true)
	if !ok {
		return models.Value{}, unknownOption(level, input)
	}
	return models.Dataset(opt.Code, opt.Name), nil
}

func unknownOption(level models.Level, input string) error {
	return dErrors.NewValidation(
		fmt.Sprintf("%q is not a known %s", input, strings.ToLower(level.Label())),
		map[string]string{string(level): level.Label() + " is not in the list"},
	)
}

// dropLocked forgets a level's list and orphans any lookup in flight for it.
func (c *Controller) dropLocked(level models.Level) {
	c.gen[level]++
	c.state.dropOptions(level)
}
