package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"veriadmin/internal/media/metrics"
	dErrors "veriadmin/pkg/domain-errors"
)

func TestDataURL(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		raw := DataURL("image/png", []byte{0x89, 'P', 'N', 'G'})
		assert.True(t, strings.HasPrefix(raw, "data:image/png;base64,"))

		ct, data, err := ParseDataURL(raw)
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	})

	t.Run("missing content type defaults", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(DataURL("", []byte("x")), "data:application/octet-stream;base64,"))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{
			"https://example.com/a.png",
			"data:image/png;base64",
			"data:image/png,abc",
			"data:image/png;base64,***",
		} {
			_, _, err := ParseDataURL(in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), in)
		}
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindVideo, KindOf("video/mp4"))
	assert.Equal(t, KindImage, KindOf("image/jpeg"))
	assert.Equal(t, KindImage, KindOf(""))
}

type UploaderSuite struct {
	suite.Suite
	server   *httptest.Server
	metrics  *metrics.Metrics
	uploader *Uploader
	inFlight atomic.Int32
	peak     atomic.Int32
}

func TestUploaderSuite(t *testing.T) {
	suite.Run(t, new(UploaderSuite))
}

// SetupTest starts an asset host that rejects any file named "broken-*" and
// echoes the rest back under https://cdn.test/.
func (s *UploaderSuite) SetupTest() {
	s.inFlight.Store(0)
	s.peak.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := s.inFlight.Add(1)
		defer s.inFlight.Add(-1)
		for {
			p := s.peak.Load()
			if n <= p || s.peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)

		_ = r.ParseForm()
		_, data, err := ParseDataURL(r.PostForm.Get("file"))
		if err != nil || r.PostForm.Get("upload_preset") != "unsigned" || strings.HasPrefix(string(data), "broken") {
			http.Error(w, `{"error":{"message":"Invalid image file"}}`, http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.test/" + string(data)})
	}))
	s.T().Cleanup(s.server.Close)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.uploader = NewUploader(s.server.URL, "unsigned", time.Second,
		WithHTTPClient(s.server.Client()),
		WithMetrics(s.metrics),
		WithConcurrency(2),
	)
}

func file(name, contentType string) File {
	return File{Name: name, ContentType: contentType, Data: []byte(name)}
}

func (s *UploaderSuite) TestUploadReturnsSecureURL() {
	got, err := s.uploader.Upload(context.Background(), file("front.jpg", "image/jpeg"))
	s.Require().NoError(err)
	s.Equal("https://cdn.test/front.jpg", got)
}

func (s *UploaderSuite) TestUploadSurfacesRejection() {
	_, err := s.uploader.Upload(context.Background(), file("broken-1.jpg", "image/jpeg"))
	s.ErrorContains(err, "status 400")
}

func (s *UploaderSuite) TestUploadAllSkipsFailuresAndKeepsOrder() {
	files := []File{
		file("a.jpg", "image/jpeg"),
		file("broken-b.jpg", "image/jpeg"),
		file("c.mp4", "video/mp4"),
		file("d.jpg", "image/jpeg"),
	}

	got := s.uploader.UploadAll(context.Background(), files)

	s.Equal([]Uploaded{
		{Name: "a.jpg", Kind: KindImage, URL: "https://cdn.test/a.jpg"},
		{Name: "c.mp4", Kind: KindVideo, URL: "https://cdn.test/c.mp4"},
		{Name: "d.jpg", Kind: KindImage, URL: "https://cdn.test/d.jpg"},
	}, got)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Uploads.WithLabelValues("image", "skipped")))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.Uploads.WithLabelValues("image", "ok")))
	s.LessOrEqual(s.peak.Load(), int32(2))

	images, videos := Split(got)
	s.Equal([]string{"https://cdn.test/a.jpg", "https://cdn.test/d.jpg"}, images)
	s.Equal([]string{"https://cdn.test/c.mp4"}, videos)
}

func (s *UploaderSuite) TestOneOfTwoFailing() {
	got := s.uploader.UploadAll(context.Background(), []File{
		file("broken-front.jpg", "image/jpeg"),
		file("side.jpg", "image/jpeg"),
	})

	s.Require().Len(got, 1)
	s.Equal("https://cdn.test/side.jpg", got[0].URL)
}

func (s *UploaderSuite) TestUnreachableHostSkipsEverything() {
	s.server.Close()

	got := s.uploader.UploadAll(context.Background(), []File{file("a.jpg", "image/jpeg")})
	s.Empty(got)
	images, videos := Split(got)
	s.NotNil(images)
	s.NotNil(videos)
}
