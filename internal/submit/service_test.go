package submit

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Backend,Uploader,AuditPublisher,Selection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veriadmin/internal/audit"
	"veriadmin/internal/backend"
	backendmodels "veriadmin/internal/backend/models"
	"veriadmin/internal/formbind"
	"veriadmin/internal/geography"
	"veriadmin/internal/location/cascade"
	"veriadmin/internal/location/models"
	"veriadmin/internal/media"
	"veriadmin/internal/submit/mocks"
	dErrors "veriadmin/pkg/domain-errors"
	id "veriadmin/pkg/domain"
)

type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	mockBackend  *mocks.MockBackend
	mockUploader *mocks.MockUploader
	mockAudit    *mocks.MockAuditPublisher
	service      *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockBackend = mocks.NewMockBackend(s.ctrl)
	s.mockUploader = mocks.NewMockUploader(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)
	s.service = New(s.mockBackend, s.mockUploader,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.mockAudit),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// selection drives a real controller over the bundled dataset down to a
// city region.
func (s *ServiceSuite) selection() *cascade.Controller {
	c := cascade.New(geography.NewBundled(), cascade.WithLookupTimeout(time.Second))
	c.Init(s.ctx)
	c.Wait()
	fee := 1500.0
	for _, step := range []func() (bool, error){
		func() (bool, error) { return c.SelectCountry(s.ctx, "NG") },
		func() (bool, error) { c.Wait(); return c.SelectState(s.ctx, "Lagos") },
		func() (bool, error) { c.Wait(); return c.SelectCity("Ikeja") },
		func() (bool, error) { return c.SetCityRegion("Alausa", &fee) },
	} {
		applied, err := step()
		s.Require().NoError(err)
		s.Require().True(applied)
	}
	return c
}

func branchDetails() formbind.Details {
	return formbind.Details{
		LocationType: "branch",
		BrandName:    "Acme Foods",
		HouseNumber:  "12",
		Street:       "Obafemi Awolowo Way",
	}
}

func (s *ServiceSuite) TestSubmitLocationCreatesRecord() {
	sel := s.selection()
	uploaded := []media.Uploaded{
		{Name: "front.jpg", Kind: media.KindImage, URL: "https://cdn.test/front.jpg"},
		{Name: "tour.mp4", Kind: media.KindVideo, URL: "https://cdn.test/tour.mp4"},
	}

	s.mockUploader.EXPECT().UploadAll(gomock.Any(), gomock.Len(2)).Return(uploaded)
	s.mockBackend.EXPECT().CreateLocation(gomock.Any(), "org-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, loc backendmodels.Location) (backendmodels.Location, error) {
			s.Equal("Nigeria", loc.Country)
			s.Equal("Lagos", loc.State)
			s.Equal("Ikeja", loc.City)
			s.Equal("Alausa", loc.CityRegion)
			s.Equal("org-1", loc.OrganizationID)
			s.Equal([]string{"https://cdn.test/old.jpg", "https://cdn.test/front.jpg"}, loc.Gallery.Images)
			s.Equal([]string{"https://cdn.test/tour.mp4"}, loc.Gallery.Videos)
			loc.ID = "loc-1"
			return loc, nil
		})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionLocationSubmitted, e.Action)
			s.Equal("loc-1", e.ResourceID)
			s.Equal(sel.ID().String(), e.SelectionID)
			s.Equal(formbind.ProfileNameLocation, e.Profile)
			return nil
		})

	saved, err := s.service.SubmitLocation(s.ctx, sel, formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		Details:        branchDetails(),
		Gallery:        backendmodels.Gallery{Images: []string{"https://cdn.test/old.jpg"}},
		Files:          []media.File{{Name: "front.jpg"}, {Name: "tour.mp4"}},
	})

	s.Require().NoError(err)
	s.Equal("loc-1", saved.ID)
	s.Equal(models.StatusSubmitted, sel.Status())
}

func (s *ServiceSuite) TestSubmitLocationUpdatesExisting() {
	sel := s.selection()
	s.mockUploader.EXPECT().UploadAll(gomock.Any(), gomock.Nil()).Return(nil)
	s.mockBackend.EXPECT().UpdateLocation(gomock.Any(), "org-1", "loc-7", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, loc backendmodels.Location) (backendmodels.Location, error) {
			s.NotNil(loc.Gallery.Images)
			s.NotNil(loc.Gallery.Videos)
			loc.ID = "loc-7"
			return loc, nil
		})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.SubmitLocation(s.ctx, sel, formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		LocationID:     "loc-7",
		Details:        branchDetails(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestValidationFailureMakesNoCalls() {
	sel := s.selection()
	d := branchDetails()
	d.Street = "   "

	_, err := s.service.SubmitLocation(s.ctx, sel, formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		Details:        d,
		Files:          []media.File{{Name: "front.jpg"}},
	})

	s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal(map[string]string{"street": "Street is required"}, dErrors.FieldsOf(err))
	s.Equal(models.StatusActive, sel.Status())
}

func (s *ServiceSuite) TestServerRejectionIsTranslatedAndAudited() {
	sel := s.selection()
	s.mockUploader.EXPECT().UploadAll(gomock.Any(), gomock.Any()).Return(nil)
	s.mockBackend.EXPECT().CreateLocation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(backendmodels.Location{}, &backend.APIError{Status: http.StatusBadRequest, Message: "city: Path `city` is required."})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionSubmissionRejected, e.Action)
			s.NotEmpty(e.Reason)
			return errors.New("audit sink down")
		})

	_, err := s.service.SubmitLocation(s.ctx, sel, formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		Details:        branchDetails(),
	})

	s.Equal(map[string]string{"city": "City is required"}, dErrors.FieldsOf(err))
	s.Equal(models.StatusActive, sel.Status(), "rejected submissions keep the selection open")
}

func (s *ServiceSuite) TestNetworkFailureShowsBanner() {
	sel := s.selection()
	s.mockUploader.EXPECT().UploadAll(gomock.Any(), gomock.Any()).Return(nil)
	s.mockBackend.EXPECT().CreateLocation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(backendmodels.Location{}, &backend.TransportError{Op: "create_location", Err: io.ErrUnexpectedEOF})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.SubmitLocation(s.ctx, sel, formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		Details:        branchDetails(),
	})

	var de *dErrors.Error
	s.Require().ErrorAs(err, &de)
	s.Equal(backend.NetworkErrorMessage, de.Message)
}

func (s *ServiceSuite) TestTerminalSelectionIsRejected() {
	mockSel := mocks.NewMockSelection(s.ctrl)
	mockSel.EXPECT().Snapshot().Return(models.Snapshot{ID: id.NewSelectionID(), Status: models.StatusDiscarded})

	_, err := s.service.SubmitCityRegion(s.ctx, mockSel, formbind.CityRegionManagement(), CityRegionRequest{})
	s.ErrorIs(err, cascade.ErrTerminated)
}

func (s *ServiceSuite) TestDiscardedMeanwhileStillReturnsRecord() {
	mockSel := mocks.NewMockSelection(s.ctrl)
	snap := s.selection().Snapshot()
	mockSel.EXPECT().Snapshot().Return(snap)
	mockSel.EXPECT().Submit().Return(models.Snapshot{}, cascade.ErrTerminated)
	s.mockBackend.EXPECT().CreateCityRegions(gomock.Any(), gomock.Any()).
		Return(backendmodels.CityRegionSet{ID: "cr-1"}, nil)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	saved, err := s.service.SubmitCityRegion(s.ctx, mockSel, formbind.CityRegionManagement(), CityRegionRequest{})
	s.Require().NoError(err)
	s.Equal("cr-1", saved.ID)
}

func (s *ServiceSuite) TestSubmitCityRegion() {
	sel := s.selection()
	s.mockBackend.EXPECT().UpdateCityRegion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, set backendmodels.CityRegionSet) (backendmodels.CityRegionSet, error) {
			s.Equal("cr-9", set.ID)
			s.Require().Len(set.Regions, 1)
			s.Equal("Alausa", set.Regions[0].Name)
			s.Equal(1500.0, *set.Regions[0].Fee)
			return set, nil
		})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.SubmitCityRegion(s.ctx, sel, formbind.CityRegionManagement(), CityRegionRequest{ID: "cr-9"})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSubmitPricingAtStateLevel() {
	sel := s.selection()
	fee := 2500.0
	inactive := false
	s.mockBackend.EXPECT().CreatePricing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rule backendmodels.PricingRule) (backendmodels.PricingRule, error) {
			s.Equal(backendmodels.PricingState, rule.Level)
			s.Equal("Nigeria", rule.Country)
			s.Equal("Lagos", rule.State)
			s.Empty(rule.City)
			s.Equal(2500.0, rule.DefaultFee)
			s.False(rule.IsActive)
			rule.ID = "pr-1"
			return rule, nil
		})
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	saved, err := s.service.SubmitPricing(s.ctx, sel, formbind.DefaultPricing(backendmodels.PricingState), PricingRequest{
		Details: formbind.Details{DefaultFee: &fee, IsActive: &inactive},
	})
	s.Require().NoError(err)
	s.Equal("pr-1", saved.ID)
}

// TestOneOfTwoUploadsFailing runs the real uploader against an asset host
// that rejects one file.
func (s *ServiceSuite) TestResolveAddressForVerificationForm() {
	sel := s.selection()
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionAddressResolved, e.Action)
			s.Equal(formbind.ProfileNameVerification, e.Profile)
			return nil
		})

	addr, err := s.service.ResolveAddress(s.ctx, sel, formbind.VerificationData())
	s.Require().NoError(err)
	s.Equal(models.Address{
		Country:     "Nigeria",
		CountryCode: "NG",
		State:       "Lagos",
		StateCode:   "LA",
		City:        "Ikeja",
	}, addr, "city region is not part of the verification record")
	s.Equal(models.StatusSubmitted, sel.Status())
}

func (s *ServiceSuite) TestResolveAddressNeedsCity() {
	c := cascade.New(geography.NewBundled(), cascade.WithLookupTimeout(time.Second))
	c.Init(s.ctx)
	c.Wait()
	_, err := c.SelectCountry(s.ctx, "NG")
	s.Require().NoError(err)
	c.Wait()

	_, err = s.service.ResolveAddress(s.ctx, c, formbind.VerificationData())
	s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal(map[string]string{"state": "State is required", "city": "City is required"}, dErrors.FieldsOf(err))
	s.Equal(models.StatusActive, c.Status())
}

func (s *ServiceSuite) TestOneOfTwoUploadsFailing() {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		_, data, err := media.ParseDataURL(r.PostForm.Get("file"))
		if err != nil || strings.HasPrefix(string(data), "corrupt") {
			http.Error(w, "bad file", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.test/" + string(data)})
	}))
	defer host.Close()

	svc := New(s.mockBackend, media.NewUploader(host.URL, "preset", time.Second, media.WithHTTPClient(host.Client())),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.mockBackend.EXPECT().CreateLocation(gomock.Any(), "org-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, loc backendmodels.Location) (backendmodels.Location, error) {
			s.Equal([]string{"https://cdn.test/good.jpg"}, loc.Gallery.Images)
			s.Empty(loc.Gallery.Videos)
			return loc, nil
		})

	_, err := svc.SubmitLocation(s.ctx, s.selection(), formbind.LocationRecord(), LocationRequest{
		OrganizationID: "org-1",
		Details:        branchDetails(),
		Files: []media.File{
			{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("corrupt.jpg")},
			{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("good.jpg")},
		},
	})
	s.Require().NoError(err)
}
