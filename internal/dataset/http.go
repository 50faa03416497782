package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"drops-mcp/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// breakerTripFailures is the number of consecutive transport or 5xx failures
// that opens the circuit.
const breakerTripFailures = 5

var errServerStatus = errors.New("server error")

type fetchResult struct {
	body   []byte
	status int
}

// HTTPSource fetches documents from a static site or bucket. Requests are
// paced by a shared limiter and guarded by a circuit breaker.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[fetchResult]
}

// NewHTTPSource creates a source for baseURL. A non-positive interval disables
// pacing.
func NewHTTPSource(baseURL string, interval time.Duration) *HTTPSource {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker[fetchResult](gobreaker.Settings{
			Name:    "dataset-http",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTripFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
			},
		}),
	}
}

// get returns the body and status of a document. Non-2xx statuses are not
// errors; callers decide what a missing document means.
func (s *HTTPSource) get(ctx context.Context, rel string) ([]byte, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	url := s.baseURL + "/" + rel
	start := time.Now()
	res, err := s.breaker.Execute(func() (fetchResult, error) {
		return s.fetch(ctx, url)
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, 0, err
	}

	log.Debug().
		Str("url", url).
		Int("status", res.status).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched document")
	return res.body, res.status, nil
}

// fetch reports 5xx statuses as errServerStatus so they count against the
// breaker.
func (s *HTTPSource) fetch(ctx context.Context, url string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fetchResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fetchResult{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, fmt.Errorf("failed to read %s: %w", url, err)
	}
	res := fetchResult{body: body, status: resp.StatusCode}
	if resp.StatusCode >= 500 {
		return res, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode)
	}
	return res, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func (s *HTTPSource) Events(ctx context.Context) ([]stats.Event, error) {
	body, status, err := s.get(ctx, EventsFile)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("failed to fetch events: %d", status)
	}
	return decodeEvents(body)
}

// Exclusions treats a non-2xx status below 500 as "no exclusions published
// yet". A 5xx is an error so a cache never holds an empty fallback.
func (s *HTTPSource) Exclusions(ctx context.Context) (stats.ExclusionsMap, error) {
	body, status, err := s.get(ctx, ExclusionsFile)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("failed to fetch exclusions: %d", status)
	}
	if !isSuccess(status) {
		log.Debug().Int("status", status).Msg("No exclusions document, assuming none")
		return stats.ExclusionsMap{}, nil
	}
	return decodeExclusions(body)
}

// QuestData returns nil for 403 and 404; buckets behind a CDN answer 403 for
// objects that were never written.
func (s *HTTPSource) QuestData(ctx context.Context, eventID, questID string) (*stats.QuestData, error) {
	rel, err := questPath(eventID, questID)
	if err != nil {
		return nil, err
	}
	body, status, err := s.get(ctx, rel)
	if err != nil {
		return nil, err
	}
	if status == http.StatusForbidden || status == http.StatusNotFound {
		return nil, nil
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("failed to fetch quest data: %d", status)
	}
	return decodeQuestData(body)
}
