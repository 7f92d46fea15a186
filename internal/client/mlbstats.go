package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Fcontice/HomeRunDerby2.0/internal/metrics"
	"github.com/Fcontice/HomeRunDerby2.0/internal/models"
)

// ByteCache is the optional cache the client consults before fetching box
// scores. Satisfied by cache.RedisCache.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Client is the MLB Stats API client. Calls are bounded by the configured
// timeout and are never retried; failed days are re-imported by the operator
// and the upserts make re-runs safe.
type Client struct {
	baseURL    string
	httpClient *http.Client

	boxScoreCache    ByteCache
	boxScoreCacheTTL time.Duration
}

// NewClient creates a new MLB Stats API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// UseBoxScoreCache attaches a cache for box score payloads
func (c *Client) UseBoxScoreCache(cache ByteCache, ttl time.Duration) {
	c.boxScoreCache = cache
	c.boxScoreCacheTTL = ttl
}

// get performs a GET request against the MLB Stats API
func (c *Client) get(ctx context.Context, endpoint, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "HomeRunDerby2.0/1.0")

	if len(params) > 0 {
		q := req.URL.Query()
		for key, value := range params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	log.Debug().
		Str("url", url).
		Str("method", req.Method).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.APICallDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.APICallsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Msg("API request successful")

	return body, nil
}

// FetchHomeRunLeaders fetches one page of the regular season home run
// leaderboard, sorted descending by home runs. offset is the page cursor.
func (c *Client) FetchHomeRunLeaders(ctx context.Context, season, limit, offset int) ([]models.LeaderboardEntry, error) {
	params := map[string]string{
		"leaderCategories": "homeRuns",
		"season":           strconv.Itoa(season),
		"limit":            strconv.Itoa(limit),
		"offset":           strconv.Itoa(offset),
		"leaderGameTypes":  models.GameTypeRegularSeason,
		"statGroup":        "hitting",
	}

	body, err := c.get(ctx, "leaders", "stats/leaders", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch home run leaders: %w", err)
	}

	var leaderboard models.LeaderboardResponse
	if err := json.Unmarshal(body, &leaderboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return leaderboard.Entries(), nil
}

// FetchSchedule fetches all MLB games scheduled on date (YYYY-MM-DD)
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]models.ScheduledGame, error) {
	params := map[string]string{
		"sportId": "1",
		"date":    date,
	}

	body, err := c.get(ctx, "schedule", "schedule", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}

	var schedule models.ScheduleResponse
	if err := json.Unmarshal(body, &schedule); err != nil {
		// Off-season and maintenance windows can return non-JSON bodies.
		// A day with no readable schedule is a day with no games.
		log.Warn().Err(err).Str("date", date).Msg("Unreadable schedule response, treating as no games")
		return nil, nil
	}

	return schedule.Games(), nil
}

// FetchBoxScore fetches the box score for a single game, consulting the
// cache first when one is attached
func (c *Client) FetchBoxScore(ctx context.Context, gamePk int) (*models.BoxScore, error) {
	cacheKey := fmt.Sprintf("boxscore:%d", gamePk)

	if c.boxScoreCache != nil {
		if cached, ok := c.boxScoreCache.Get(ctx, cacheKey); ok {
			var boxScore models.BoxScore
			if err := json.Unmarshal(cached, &boxScore); err == nil {
				return &boxScore, nil
			}
			// Corrupt entry. Refetch and overwrite it below.
			log.Warn().Int("game_pk", gamePk).Msg("Discarding unreadable cached box score")
		}
	}

	body, err := c.get(ctx, "boxscore", fmt.Sprintf("game/%d/boxscore", gamePk), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch box score for game %d: %w", gamePk, err)
	}

	if c.boxScoreCache != nil {
		if err := c.boxScoreCache.Set(ctx, cacheKey, body, c.boxScoreCacheTTL); err != nil {
			log.Warn().Err(err).Int("game_pk", gamePk).Msg("Failed to cache box score")
		}
	}

	var boxScore models.BoxScore
	if err := json.Unmarshal(body, &boxScore); err != nil {
		return nil, fmt.Errorf("failed to unmarshal box score for game %d: %w", gamePk, err)
	}

	return &boxScore, nil
}
