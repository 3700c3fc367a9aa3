package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"telegram-gate-bot/internal/domain/ports/adapter"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ adapter.InstallerFetcher = (*HTTPFetcher)(nil)

// maxInstallerSize caps downloads at the platform's document limit.
const maxInstallerSize = 50 << 20

// HTTPFetcher downloads the installer over plain HTTP(S).
type HTTPFetcher struct {
	client *http.Client
	log    *zerolog.Logger
}

func NewHTTPFetcher(timeout time.Duration, logger *zerolog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, []byte, error) {
	defer logging.TraceDuration(f.log, "HTTPFetcher.Fetch")()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.InstallerFetches.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("build installer request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.InstallerFetches.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("fetch installer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.InstallerFetches.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("fetch installer: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInstallerSize+1))
	if err != nil {
		metrics.InstallerFetches.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("read installer body: %w", err)
	}
	if len(body) > maxInstallerSize {
		metrics.InstallerFetches.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("installer exceeds %d bytes", maxInstallerSize)
	}

	name := fileName(resp, rawURL)
	metrics.InstallerFetches.WithLabelValues("ok").Inc()
	f.log.Info().Str("url", rawURL).Str("name", name).Int("bytes", len(body)).Msg("installer fetched")
	return name, body, nil
}

// fileName picks the delivered file name: Content-Disposition wins,
// then the URL path, then a generic fallback.
func fileName(resp *http.Response, rawURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if n := params["filename"]; n != "" {
				return n
			}
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." && strings.Contains(base, ".") {
			return base
		}
	}
	return "installer.exe"
}
