package featurestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"edgestats/internal/errors"
	"edgestats/pkg/contracts/domain"
)

// HTTPConfig configures an HTTPProvider.
type HTTPConfig struct {
	GameURLTemplate   string
	PlayerURLTemplate string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	// CacheDir mirrors every downloaded file when set; later fetches of the
	// same season are served from it.
	CacheDir string
}

// HTTPProvider downloads season tables over HTTP.
type HTTPProvider struct {
	cfg     HTTPConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHTTPProvider creates a provider. Requests are paced by a token bucket
// of RequestsPerSecond and Burst; a zero rate disables pacing.
func NewHTTPProvider(cfg HTTPConfig, logger *slog.Logger) *HTTPProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &HTTPProvider{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, cfg.Burst),
		logger:  logger.With(slog.String("component", "featurestore_http")),
	}
}

// FetchGameFeatures implements Provider.
func (p *HTTPProvider) FetchGameFeatures(ctx context.Context, season int) ([]domain.GameRow, error) {
	body, err := p.fetch(ctx, KindGames, p.cfg.GameURLTemplate, season)
	if err != nil {
		return nil, err
	}
	games, err := DecodeGames(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season, err)
	}
	return games, nil
}

// FetchPlayerProjections implements Provider.
func (p *HTTPProvider) FetchPlayerProjections(ctx context.Context, season int, group domain.PositionGroup) ([]domain.PlayerWeekRow, error) {
	body, err := p.fetch(ctx, KindPlayers, p.cfg.PlayerURLTemplate, season)
	if err != nil {
		return nil, err
	}
	players, err := DecodePlayers(bytes.NewReader(body), group)
	if err != nil {
		return nil, fmt.Errorf("season %d group %s: %w", season, group, err)
	}
	return players, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, kind Kind, template string, season int) ([]byte, error) {
	cachePath := ""
	if p.cfg.CacheDir != "" {
		cachePath = filepath.Join(p.cfg.CacheDir, filepath.FromSlash(SeasonFile(kind, season)))
		if body, err := os.ReadFile(cachePath); err == nil {
			p.logger.DebugContext(ctx, "serving season from raw cache",
				slog.String("kind", string(kind)),
				slog.Int("season", season),
				slog.String("path", cachePath))
			return body, nil
		}
	}

	url, err := ExpandTemplate(template, season)
	if err != nil {
		return nil, errors.NewConfigError("invalid feature store url template", err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.NewNetworkError("rate limiter wait", err).WithContext("season", season)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError("build request", err).WithContext("url", url)
	}
	if p.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", p.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("fetch %s season %d", kind, season), err).
			WithContext("url", url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("read %s season %d", kind, season), err).
			WithContext("url", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("fetch %s season %d: status %d", kind, season, resp.StatusCode), nil).
			WithContext("url", url).
			WithContext("status", resp.StatusCode)
	}

	p.logger.InfoContext(ctx, "fetched season table",
		slog.String("kind", string(kind)),
		slog.Int("season", season),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)))

	if cachePath != "" {
		if err := writeFileAtomic(cachePath, body); err != nil {
			p.logger.WarnContext(ctx, "failed to write raw cache",
				slog.String("path", cachePath),
				slog.String("error", err.Error()))
		}
	}
	return body, nil
}

// writeFileAtomic writes through a temp file in the target directory.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
