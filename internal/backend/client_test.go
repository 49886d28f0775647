package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"veriadmin/internal/backend/metrics"
	"veriadmin/internal/backend/models"
	dErrors "veriadmin/pkg/domain-errors"
	"veriadmin/pkg/requestcontext"
)

type ClientSuite struct {
	suite.Suite
	mux     *http.ServeMux
	server  *httptest.Server
	metrics *metrics.Metrics
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.T().Cleanup(s.server.Close)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.client = New(s.server.URL+"/api/v1", time.Second,
		WithHTTPClient(s.server.Client()),
		WithMetrics(s.metrics),
	)
}

func fee(v float64) *float64 { return &v }

func (s *ClientSuite) TestCreateLocationForwardsCallerIdentity() {
	var gotAuth, gotRID string
	var got models.Location
	s.mux.HandleFunc("POST /api/v1/organizations/org-1/locations", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		got.ID = "loc-9"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": got})
	})

	ctx := requestcontext.WithBearerToken(context.Background(), "tok")
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	out, err := s.client.CreateLocation(ctx, "org-1", models.Location{
		Country: "Nigeria",
		State:   "Lagos",
		City:    "Ikeja",
		Gallery: models.Gallery{Images: []string{}, Videos: []string{}},
	})
	s.Require().NoError(err)
	s.Equal("Bearer tok", gotAuth)
	s.Equal("req-1", gotRID)
	s.Equal("Lagos", got.State)
	s.Equal("loc-9", out.ID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Requests.WithLabelValues("create_location", "ok")))
}

func (s *ClientSuite) TestListLocationsAcceptsBareArray() {
	s.mux.HandleFunc("GET /api/v1/organizations/org-1/locations", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"a","city":"Ikeja"},{"_id":"b","city":"Lekki"}]`)
	})

	out, err := s.client.ListLocations(context.Background(), "org-1")
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal("Lekki", out[1].City)
}

func (s *ClientSuite) TestCityRegionsUseLegacyShapes() {
	var created, updated map[string]any
	s.mux.HandleFunc("POST /api/v1/city-regions", func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&created))
		_, _ = io.WriteString(w, `{"_id":"cr-1","country":"Nigeria","stateProvince":"Lagos","city":"Ikeja","cityRegions":[{"name":"Alausa","fee":1500}]}`)
	})
	s.mux.HandleFunc("PUT /api/v1/city-regions/cr-1", func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&updated))
		_, _ = io.WriteString(w, `{"_id":"cr-1","country":"Nigeria","state":"Lagos","city":"Ikeja","cityRegion":"Alausa","cityRegionFee":2000}`)
	})

	set := models.CityRegionSet{
		Country: "Nigeria",
		State:   "Lagos",
		City:    "Ikeja",
		Regions: []models.Region{{Name: "Alausa", Fee: fee(1500)}},
	}
	out, err := s.client.CreateCityRegions(context.Background(), set)
	s.Require().NoError(err)
	s.Equal("Lagos", created["stateProvince"])
	s.NotContains(created, "state")
	s.Len(created["cityRegions"], 1)
	s.Equal("Lagos", out.State)
	s.Equal("Alausa", out.Regions[0].Name)

	set.ID = "cr-1"
	set.Regions[0].Fee = fee(2000)
	out, err = s.client.UpdateCityRegion(context.Background(), set)
	s.Require().NoError(err)
	s.Equal("Lagos", updated["state"])
	s.Equal("Alausa", updated["cityRegion"])
	s.Equal(2000.0, updated["cityRegionFee"])
	s.Require().Len(out.Regions, 1)
	s.Equal(2000.0, *out.Regions[0].Fee)
}

func (s *ClientSuite) TestSetVerificationStatusSendsReasonOnlyOnRejection() {
	var bodies []map[string]any
	s.mux.HandleFunc("PATCH /api/v1/organizations/org-1/verification", func(w http.ResponseWriter, r *http.Request) {
		var b map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&b))
		bodies = append(bodies, b)
		_, _ = io.WriteString(w, `{"_id":"org-1"}`)
	})

	_, err := s.client.SetVerificationStatus(context.Background(), "org-1", models.VerificationVerified, "ignored")
	s.Require().NoError(err)
	_, err = s.client.SetVerificationStatus(context.Background(), "org-1", models.VerificationRejected, "blurry documents")
	s.Require().NoError(err)

	s.Require().Len(bodies, 2)
	s.NotContains(bodies[0], "rejectionReason")
	s.Equal("blurry documents", bodies[1]["rejectionReason"])
}

func (s *ClientSuite) TestListOrganizationsFiltersByStatus() {
	var query string
	s.mux.HandleFunc("GET /api/v1/organizations", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	out, err := s.client.ListOrganizations(context.Background(), models.VerificationPending)
	s.Require().NoError(err)
	s.Empty(out)
	s.Equal("status=pending", query)
}

func (s *ClientSuite) TestRejectionBecomesAPIError() {
	s.mux.HandleFunc("POST /api/v1/default-pricing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"country: Path `+"`country`"+` is required."}`)
	})

	_, err := s.client.CreatePricing(context.Background(), models.PricingRule{})
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Requests.WithLabelValues("create_pricing", "4xx")))

	translated := TranslateError(err)
	s.True(dErrors.HasCode(translated, dErrors.CodeValidation))
	s.Equal(map[string]string{"country": "Country is required"}, dErrors.FieldsOf(translated))
}

func (s *ClientSuite) TestUnreachableBackendIsTransportError() {
	s.server.Close()

	err := s.client.DeletePackage(context.Background(), "p1")
	var tErr *TransportError
	s.Require().ErrorAs(err, &tErr)
	s.Equal("delete_package", tErr.Op)
}

func (s *ClientSuite) TestUndecodableSuccessIsTransportError() {
	s.mux.HandleFunc("GET /api/v1/subscription-packages", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := s.client.ListPackages(context.Background())
	var tErr *TransportError
	s.Require().ErrorAs(err, &tErr)
}
