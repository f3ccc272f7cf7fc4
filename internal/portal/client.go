package portal

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/twtraffic/violation-reporter/internal/captcha"
)

// Portal endpoints. The captcha servlet lives outside the /traffic/ prefix.
const (
	DefaultBaseURL    = "https://suggest.police.taichung.gov.tw/traffic/"
	DefaultCaptchaURL = "https://suggest.police.taichung.gov.tw/GetCaptchaImageServlet"

	formPage   = "traffic_write.jsp"
	submitPage = "traffic_writesave.jsp"
)

// Per-call timeouts. Submissions carry a video upload and get more room.
const (
	fetchTimeout  = 10 * time.Second
	submitTimeout = 30 * time.Second
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Options configures a Client. The zero value selects the live portal,
// OCR-backed captcha solving with the default retry budget, and the default
// scratch directory.
type Options struct {
	// BaseURL overrides the portal base (mainly for tests). It must end
	// with a slash.
	BaseURL string

	// CaptchaURL overrides the captcha image endpoint.
	CaptchaURL string

	// CaptchaDir is the scratch directory for fetched captcha images.
	CaptchaDir string

	// DisableOCR turns off automatic captcha solving; submissions then
	// suspend with CaptchaRequired until the caller supplies the text.
	DisableOCR bool

	// MaxCaptchaRetries bounds the OCR fetch+solve attempts. Values
	// below one select captcha.DefaultMaxAttempts.
	MaxCaptchaRetries int

	// Solver overrides the Tesseract solver, a seam for tests.
	Solver captcha.Solver

	// Logger receives the client's event log. Zero value logs nowhere.
	Logger zerolog.Logger
}

// Client drives the portal's submission form.
type Client struct {
	http      *http.Client
	log       zerolog.Logger
	store     *captcha.Store
	fetcher   captcha.Fetcher
	resolver  *captcha.Resolver
	formURL   string
	submitURL string
	enableOCR bool
	headers   http.Header
}

// New builds a Client with its own cookie-jar session and captcha scratch
// directory.
func New(opts Options) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	captchaURL := opts.CaptchaURL
	if captchaURL == "" {
		captchaURL = DefaultCaptchaURL
	}

	formURL := base + formPage

	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	headers.Set("Referer", formURL)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	headers.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7")

	store, err := captcha.NewStore(opts.CaptchaDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Jar: jar}

	fetcher := captcha.NewImageFetcher(httpClient, captchaURL, headers, store, opts.Logger)
	solver := opts.Solver
	if solver == nil {
		solver = captcha.NewTesseractSolver(opts.Logger)
	}
	resolver := captcha.NewResolver(fetcher, solver, store, opts.MaxCaptchaRetries, opts.Logger)

	return &Client{
		http:      httpClient,
		log:       opts.Logger,
		store:     store,
		fetcher:   fetcher,
		resolver:  resolver,
		formURL:   formURL,
		submitURL: base + submitPage,
		enableOCR: !opts.DisableOCR,
		headers:   headers,
	}, nil
}

// PurgeCaptchaImages removes every leftover captcha image in the scratch
// directory. Call it at shutdown.
func (c *Client) PurgeCaptchaImages() { c.store.PurgeAll() }

// RemoveCaptchaImage deletes one captcha image, typically the one handed
// over on a CaptchaRequired result once the caller is done with it.
// Removing an already-removed image is a no-op.
func (c *Client) RemoveCaptchaImage(path string) { c.store.Remove(path) }
