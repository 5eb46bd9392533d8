// Package fetcher downloads one file per call into a destination directory
// and reports the outcome as a Result instead of an error.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"moul.io/http2curl"

	"github.com/fullstackdevtools/csvfetch/internal/browser"
	"github.com/fullstackdevtools/csvfetch/pkg/errors"
	"github.com/fullstackdevtools/csvfetch/pkg/logtrace"
	"github.com/fullstackdevtools/csvfetch/pkg/utils"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "curl/8"
	FallbackFilename = "download.csv"

	filePermissions = 0o644
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FreeSpaceFunc reports available bytes on the volume holding dir.
type FreeSpaceFunc func(dir string) (uint64, error)

// Config configures a Fetcher. Only Dir is required.
type Config struct {
	Dir       string
	Timeout   time.Duration
	UserAgent string
	Client    HTTPDoer
	Opener    browser.Opener
	FreeSpace FreeSpaceFunc

	// DisableBrowser keeps 403 responses from launching a browser.
	DisableBrowser bool
}

// Fetcher performs single-shot downloads into Config.Dir.
type Fetcher struct {
	dir       string
	timeout   time.Duration
	userAgent string
	client    HTTPDoer
	opener    browser.Opener
	freeSpace FreeSpaceFunc
	noBrowser bool
}

// New returns a Fetcher. It does not touch the filesystem; the caller is
// expected to have created Dir beforehand.
func New(cfg Config) (*Fetcher, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("destination directory is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Opener == nil && !cfg.DisableBrowser {
		cfg.Opener = browser.NewSystem()
	}

	return &Fetcher{
		dir:       cfg.Dir,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		client:    cfg.Client,
		opener:    cfg.Opener,
		freeSpace: cfg.FreeSpace,
		noBrowser: cfg.DisableBrowser,
	}, nil
}

// Dir returns the destination directory.
func (f *Fetcher) Dir() string {
	return f.dir
}

// ResolvePath returns the path the download of rawURL would be written to.
func (f *Fetcher) ResolvePath(name, rawURL string) string {
	return ResolvePath(f.dir, name, rawURL)
}

// ResolvePath picks a filename and joins it under dir. An explicit name wins
// and only its base is used; otherwise the last segment of the URL before any
// query string is used. The result never leaves dir.
func ResolvePath(dir, name, rawURL string) string {
	var fname string
	if name != "" {
		fname = filepath.Base(name)
	} else {
		u := rawURL
		if i := strings.Index(u, "?"); i >= 0 {
			u = u[:i]
		}
		fname = u[strings.LastIndex(u, "/")+1:]
	}

	switch fname {
	case "", ".", "..", string(filepath.Separator):
		fname = FallbackFilename
	}
	return filepath.Join(dir, fname)
}

// Download fetches rawURL with a single GET and stores the body at the
// resolved path. It never returns an error; every failure is logged and
// reflected in the Result.
func (f *Fetcher) Download(ctx context.Context, rawURL, target string) Result {
	res := Result{URL: rawURL, CorrelationID: uuid.NewString()}
	ctx = logtrace.CtxWithCorrelationID(ctx, res.CorrelationID)
	ctx = logtrace.CtxWithOrigin(ctx, "download")

	path := f.ResolvePath(target, rawURL)
	fields := logtrace.Fields{logtrace.FieldURL: rawURL, logtrace.FieldPath: path}
	logtrace.Info(ctx, "Downloading", fields)

	status, body, err := f.get(ctx, rawURL)
	if err != nil {
		return f.fail(ctx, res, OutcomeTransportError, err, fields)
	}
	res.StatusCode = status

	switch {
	case status == http.StatusForbidden:
		return f.forbidden(ctx, res, fields)
	case status < 200 || status > 299:
		return f.fail(ctx, res, OutcomeHTTPError, &StatusError{Code: status, URL: rawURL}, fields)
	}

	if err := f.save(path, body); err != nil {
		return f.fail(ctx, res, OutcomeTransportError, err, fields)
	}

	res.Outcome = OutcomeSaved
	res.Path = path
	res.Bytes = int64(len(body))
	res.Digest = utils.Blake3Hex(body)

	logtrace.Info(ctx, "Saved", logtrace.WithFields(fields, logtrace.Fields{
		logtrace.FieldBytes:  res.Bytes,
		logtrace.FieldDigest: res.Digest,
	}))
	return res
}

// get issues the request and buffers the whole body of a 2xx response.
func (f *Fetcher) get(ctx context.Context, rawURL string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	if logtrace.DebugEnabled() {
		if cmd, err := http2curl.GetCurlCommand(req); err == nil {
			logtrace.Debug(ctx, "Request", logtrace.Fields{logtrace.FieldCurl: cmd.String()})
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed to read response")
	}
	return resp.StatusCode, body, nil
}

// save writes body to path, replacing any existing file.
func (f *Fetcher) save(path string, body []byte) error {
	if f.freeSpace != nil {
		free, err := f.freeSpace(filepath.Dir(path))
		if err == nil && free < uint64(len(body)) {
			return errors.Errorf("not enough space in %s: need %d bytes, have %d", filepath.Dir(path), len(body), free)
		}
	}

	fh, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermissions)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer fh.Close()

	if _, err := fh.Write(body); err != nil {
		return errors.Wrap(err, "failed to write file")
	}
	if err := fh.Close(); err != nil {
		return errors.Wrap(err, "failed to close file")
	}
	return nil
}

func (f *Fetcher) forbidden(ctx context.Context, res Result, fields logtrace.Fields) Result {
	res.Outcome = OutcomeForbidden
	if f.noBrowser {
		logtrace.Info(ctx, "403 Forbidden, browser fallback disabled", fields)
		return res
	}
	logtrace.Info(ctx, "403 Forbidden, opening in browser", fields)

	if err := f.opener.Open(res.URL); err != nil {
		logtrace.Warn(ctx, "Failed to open browser", logtrace.WithFields(fields, logtrace.Fields{
			logtrace.FieldError: err.Error(),
		}))
		return res
	}
	res.BrowserOpened = true
	return res
}

func (f *Fetcher) fail(ctx context.Context, res Result, outcome Outcome, err error, fields logtrace.Fields) Result {
	res.Outcome = outcome
	res.Err = err

	extra := logtrace.Fields{logtrace.FieldError: err.Error()}
	if res.StatusCode != 0 {
		extra[logtrace.FieldStatus] = res.StatusCode
	}
	if logtrace.DebugEnabled() {
		extra[logtrace.FieldStackTrace] = errors.ErrorStack(err)
	}
	logtrace.Error(ctx, "Download failed", logtrace.WithFields(fields, extra))
	return res
}
