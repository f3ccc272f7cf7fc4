package captcha

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// fetchTimeout bounds one captcha image download.
const fetchTimeout = 10 * time.Second

// Doer issues HTTP requests. *http.Client satisfies it; the submission
// client passes its own session-holding client so that the captcha cookie
// matches the later form post.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves a fresh captcha image and returns its on-disk path.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// ImageFetcher downloads captcha images over HTTP into a Store.
type ImageFetcher struct {
	doer    Doer
	url     string
	headers http.Header
	store   *Store
	log     zerolog.Logger
}

// NewImageFetcher returns a fetcher hitting url with the given fixed
// headers, writing images into store.
func NewImageFetcher(doer Doer, url string, headers http.Header, store *Store, log zerolog.Logger) *ImageFetcher {
	return &ImageFetcher{doer: doer, url: url, headers: headers, store: store, log: log}
}

// Fetch issues a GET with a cache-busting t=<unix> query parameter and
// writes the response bytes to a fresh Store path. One file is created per
// successful call; the caller owns its removal.
func (f *ImageFetcher) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s?t=%d", f.url, time.Now().Unix())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{Op: "fetch", Reason: "building request failed", Err: err}
	}
	for k, vs := range f.headers {
		req.Header[k] = vs
	}

	resp, err := f.doer.Do(req)
	if err != nil {
		f.log.Error().Err(err).Msg("captcha image fetch failed")
		return "", &Error{Op: "fetch", Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Error().Int("status", resp.StatusCode).Msg("captcha image fetch failed")
		return "", &Error{Op: "fetch", Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: "fetch", Reason: "reading response failed", Err: err}
	}

	path := f.store.NewPath()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &Error{Op: "fetch", Reason: "writing image failed", Err: err}
	}

	f.log.Info().Str("path", path).Msg("captcha image fetched")
	return path, nil
}
