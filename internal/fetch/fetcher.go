package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nao1215/logpuzzle/internal/model"
)

// DefaultUserAgent identifies logpuzzle in HTTP requests.
const DefaultUserAgent = "logpuzzle/1.0 (+https://github.com/nao1215/logpuzzle)"

// Fetcher downloads URLs to local files.
type Fetcher struct {
	// client performs the HTTP requests.
	client *http.Client

	// userAgent is sent with every request. Empty means Go's default.
	userAgent string

	// logger reports per-URL failures.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher using client. A nil client means
// http.DefaultClient.
func NewFetcher(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &Fetcher{
		client:    client,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch retrieves url and writes the response body verbatim to dest,
// replacing any existing file. It returns the number of bytes written.
//
// Failures are returned as *Error so callers can tell a missing response
// (FailureTransport) from a rejected one (FailureStatus) or a local disk
// problem (FailureWrite). A partially written file is removed.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &Error{Kind: model.FailureTransport, URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &Error{Kind: model.FailureTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused for the next URL.
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain
		return 0, &Error{Kind: model.FailureStatus, URL: url, StatusCode: resp.StatusCode}
	}

	out, err := os.Create(dest) //nolint:gosec // Destination is derived from the target directory
	if err != nil {
		return 0, &Error{Kind: model.FailureWrite, URL: url, Err: err}
	}

	w := &recordingWriter{w: out}
	n, copyErr := io.Copy(w, resp.Body)
	closeErr := out.Close()

	switch {
	case copyErr != nil && w.err != nil:
		_ = os.Remove(dest) //nolint:errcheck // Best effort cleanup
		return 0, &Error{Kind: model.FailureWrite, URL: url, Err: w.err}
	case copyErr != nil:
		// The body stream broke after headers arrived.
		_ = os.Remove(dest) //nolint:errcheck // Best effort cleanup
		return 0, &Error{Kind: model.FailureTransport, URL: url, Err: copyErr}
	case closeErr != nil:
		_ = os.Remove(dest) //nolint:errcheck // Best effort cleanup
		return 0, &Error{Kind: model.FailureWrite, URL: url, Err: closeErr}
	}

	return n, nil
}

// Download fetches urls one after another into dir, naming each file with
// FileName. The directory is created if it does not exist.
//
// The returned slice holds one result per URL that was attempted, in list
// order. Per-URL failures never stop the batch. The error is non-nil only
// when the directory cannot be created or ctx is cancelled; in the latter
// case the results gathered so far are returned along with ctx.Err().
func (f *Fetcher) Download(ctx context.Context, urls []string, dir string) ([]model.FetchResult, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	results := make([]model.FetchResult, 0, len(urls))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := FileName(url, i)
		f.logger.Info("retrieving image", "index", i, "url", url, "file", name)

		n, err := f.Fetch(ctx, url, filepath.Join(dir, name))
		results = append(results, newResult(i, url, name, n, err))

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return results, ctx.Err()
			}
			f.logger.Warn("fetch failed",
				"kind", KindOf(err).String(),
				"url", url,
				"error", err,
			)
		}
	}

	return results, nil
}

// newResult converts the outcome of Fetch into a FetchResult.
func newResult(index int, url, file string, n int64, err error) model.FetchResult {
	res := model.FetchResult{Index: index, URL: url}
	if err == nil {
		res.File = file
		res.Bytes = n
		return res
	}

	res.Failure = KindOf(err)
	res.Message = err.Error()
	var fe *Error
	if errors.As(err, &fe) {
		res.StatusCode = fe.StatusCode
	}
	return res
}

// recordingWriter remembers the error returned by the wrapped writer so a
// failed io.Copy can be attributed to the disk rather than the network.
type recordingWriter struct {
	w   io.Writer
	err error
}

// Write implements io.Writer.
func (r *recordingWriter) Write(p []byte) (int, error) {
	n, err := r.w.Write(p)
	if err != nil {
		r.err = err
	}
	return n, err
}
