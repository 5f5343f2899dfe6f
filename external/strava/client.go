package strava

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/club-activity/internal/domain/activity"
	"github.com/riskibarqy/club-activity/internal/domain/club"
	"github.com/riskibarqy/club-activity/internal/platform/logging"
	"github.com/riskibarqy/club-activity/internal/platform/metrics"
	"github.com/riskibarqy/club-activity/internal/platform/resilience"
	"github.com/riskibarqy/club-activity/internal/usecase"
)

const (
	defaultBaseURL     = "https://www.strava.com/api/v3"
	memberPageSize     = 200
	maxMemberPages     = 10
	maxResponseBytes   = 6 << 20
	maxLimiterBurst    = 10
	defaultHTTPTimeout = 20 * time.Second
)

var bearerTokenRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]+`)
var errStravaTransient = crerr.New("strava transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RatePerMinute  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Strava v3 REST API with a fixed access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	flight     resilience.SingleFlight
	backoff    func(attempt int) time.Duration
}

var _ club.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerMinute > 0 {
		burst := min(cfg.RatePerMinute, maxLimiterBurst)
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), burst)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger.Named("strava"),
		breaker:    resilience.NewCircuitBreakerFromConfig("strava", cfg.CircuitBreaker, metrics.ObserveBreaker),
		limiter:    limiter,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) GetAthlete(ctx context.Context) (club.Athlete, error) {
	var payload athletePayload
	if err := c.doJSON(ctx, "athlete", "/athlete", nil, &payload); err != nil {
		return club.Athlete{}, fmt.Errorf("fetch athlete: %w", err)
	}
	return payload.toDomain(), nil
}

func (c *Client) GetAthleteStats(ctx context.Context, athleteID int64) (club.AthleteStats, error) {
	if athleteID <= 0 {
		return club.AthleteStats{}, fmt.Errorf("%w: athlete id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload athleteStatsPayload
	path := "/athletes/" + strconv.FormatInt(athleteID, 10) + "/stats"
	if err := c.doJSON(ctx, "athlete_stats", path, nil, &payload); err != nil {
		return club.AthleteStats{}, fmt.Errorf("fetch athlete stats athlete_id=%d: %w", athleteID, err)
	}
	return payload.toDomain(), nil
}

func (c *Client) ListAthleteClubs(ctx context.Context) ([]club.Club, error) {
	var payload []clubPayload
	query := url.Values{"per_page": []string{strconv.Itoa(memberPageSize)}}
	if err := c.doJSON(ctx, "athlete_clubs", "/athlete/clubs", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch athlete clubs: %w", err)
	}

	out := make([]club.Club, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

// ListClubMembers walks the member pages until a short page comes back.
func (c *Client) ListClubMembers(ctx context.Context, clubID int64) ([]club.Member, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("%w: club id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := "/clubs/" + strconv.FormatInt(clubID, 10) + "/members"
	out := make([]club.Member, 0, memberPageSize)
	for page := 1; page <= maxMemberPages; page++ {
		var payload []memberPayload
		query := url.Values{
			"page":     []string{strconv.Itoa(page)},
			"per_page": []string{strconv.Itoa(memberPageSize)},
		}
		if err := c.doJSON(ctx, "club_members", path, query, &payload); err != nil {
			return nil, fmt.Errorf("fetch club members club_id=%d page=%d: %w", clubID, page, err)
		}
		for _, item := range payload {
			out = append(out, item.toDomain())
		}
		if len(payload) < memberPageSize {
			break
		}
	}
	return out, nil
}

func (c *Client) ListClubActivities(ctx context.Context, clubID int64, page, perPage int) ([]activity.RawActivity, error) {
	if clubID <= 0 {
		return nil, fmt.Errorf("%w: club id must be greater than zero", usecase.ErrInvalidInput)
	}
	page = max(page, 1)
	if perPage <= 0 {
		perPage = memberPageSize
	}

	var payload []activity.RawActivity
	path := "/clubs/" + strconv.FormatInt(clubID, 10) + "/activities"
	query := url.Values{
		"page":     []string{strconv.Itoa(page)},
		"per_page": []string{strconv.Itoa(perPage)},
	}
	if err := c.doJSON(ctx, "club_activities", path, query, &payload); err != nil {
		return nil, fmt.Errorf("fetch club activities club_id=%d page=%d: %w", clubID, page, err)
	}
	if payload == nil {
		payload = []activity.RawActivity{}
	}
	return payload, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query url.Values, target any) error {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "strava circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return fmt.Errorf("%w: strava is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(ctx, fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, endpoint, fullURL)
		if c.breaker != nil {
			if isStravaCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if isStravaCircuitFailure(err) {
			return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode strava payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordProviderRequest(endpoint, 0)
			lastErr = fmt.Errorf("%w: send request: %s", errStravaTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			metrics.RecordProviderRequest(endpoint, resp.StatusCode)
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errStravaTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				return nil, fmt.Errorf("%w: strava status=%d body=%s", usecase.ErrUnauthorized, resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: strava status=%d body=%s", errStravaTransient, resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			default:
				return nil, fmt.Errorf("strava status=%d body=%s", resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("strava request failed")
	}
	c.logger.WarnContext(ctx, "strava request failed", "endpoint", endpoint, "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return bearerTokenRegex.ReplaceAllString(value, "Bearer REDACTED")
}

func isStravaCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errStravaTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
