// Package media uploads gallery files to the third-party asset host.
//
// Files travel as data URLs. A file that fails to upload is dropped from the
// result; a batch never fails because of one file.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"veriadmin/internal/media/metrics"
	"veriadmin/pkg/requestcontext"
)

const DefaultConcurrency = 4

// Kind separates gallery images from videos.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// KindOf derives the kind from a MIME type. Anything that is not video/* is
// treated as an image.
func KindOf(contentType string) Kind {
	if strings.HasPrefix(contentType, "video/") {
		return KindVideo
	}
	return KindImage
}

// File is a local file awaiting upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploaded is a file the asset host accepted.
type Uploaded struct {
	Name string
	Kind Kind
	URL  string
}

// Uploader posts files to the asset host.
type Uploader struct {
	endpoint    string
	preset      string
	concurrency int
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Uploader)

func WithConcurrency(n int) Option {
	return func(u *Uploader) {
		if n > 0 {
			u.concurrency = n
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(u *Uploader) {
		u.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(u *Uploader) {
		u.metrics = m
	}
}

// NewUploader creates an uploader for the host's upload endpoint and
// unsigned upload preset.
func NewUploader(endpoint, preset string, timeout time.Duration, opts ...Option) *Uploader {
	u := &Uploader{
		endpoint:    endpoint,
		preset:      preset,
		concurrency: DefaultConcurrency,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends one file and returns the host's secure URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	form := url.Values{
		"file":          {DataURL(f.ContentType, f.Data)},
		"upload_preset": {u.preset},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload %s: status %d: %s", f.Name, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var body struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("upload %s: response has no secure_url", f.Name)
	}
	return body.SecureURL, nil
}

// UploadAll uploads files concurrently and returns the successes in input
// order. Failures are logged, counted and skipped.
func (u *Uploader) UploadAll(ctx context.Context, files []File) []Uploaded {
	if len(files) == 0 {
		return nil
	}
	urls := make([]string, len(files))

	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, f := range files {
		g.Go(func() error {
			kind := KindOf(f.ContentType)
			secureURL, err := u.Upload(ctx, f)
			if err != nil {
				u.metrics.Skipped(string(kind))
				u.logger.WarnContext(ctx, "media upload failed, skipping file",
					"request_id", requestcontext.RequestID(ctx),
					"file", f.Name,
					"error", err,
				)
				return nil
			}
			u.metrics.Uploaded(string(kind), len(f.Data))
			urls[i] = secureURL
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Uploaded, 0, len(files))
	for i, f := range files {
		if urls[i] == "" {
			continue
		}
		out = append(out, Uploaded{Name: f.Name, Kind: KindOf(f.ContentType), URL: urls[i]})
	}
	return out
}

// Split groups uploaded URLs by kind, preserving order. Both slices are
// non-nil.
func Split(uploaded []Uploaded) (images, videos []string) {
	images, videos = []string{}, []string{}
	for _, up := range uploaded {
		if up.Kind == KindVideo {
			videos = append(videos, up.URL)
		} else {
			images = append(images, up.URL)
		}
	}
	return images, videos
}
