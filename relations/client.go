// Package relations fetches player neighborhoods from the leaderboard backend's
// relationship endpoint and decodes them into core.Payload values.
//
//	GET {baseURL}/player/{id}/relationships
//
// Concurrent requests for the same player share one round trip.
package relations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// DefaultTimeout bounds a single backend round trip.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client is a relationship endpoint client. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
	flight    singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through a copy of hc. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
		}
	}
}

// WithTimeout sets the per-request timeout. It wins over the timeout of a
// client passed to WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent to the backend.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("relations: parsing backend URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("relations: backend URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "nwgraph",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}

	return c, nil
}

// Relationships fetches the neighborhood of playerID.
//
// Identical concurrent calls share one request. The shared request is detached
// from the first caller's cancellation; each caller still returns early when
// its own ctx is done.
func (c *Client) Relationships(ctx context.Context, playerID string) (*core.Payload, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrEmptyPlayerID
	}

	ch := c.flight.DoChan(playerID, func() (interface{}, error) {
		return c.fetch(context.WithoutCancel(ctx), playerID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			fetchShared.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*core.Payload), nil
	}
}

// fetch performs one round trip.
func (c *Client) fetch(ctx context.Context, playerID string) (p *core.Payload, err error) {
	ctx, span := tracer.Start(ctx, "relations.Fetch",
		trace.WithAttributes(attribute.String("player.id", playerID)))
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		fetchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		span.End()
	}()

	endpoint := c.baseURL.String() + "/player/" + url.PathEscape(playerID) + "/relationships"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("relations: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relations: fetching player %s: %w", playerID, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{PlayerID: playerID, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("relations: reading player %s: %w", playerID, err)
	}
	p, err = DecodePayload(body)
	if err != nil {
		return nil, fmt.Errorf("relations: player %s: %w", playerID, err)
	}

	c.logger.Debug("relationships fetched",
		"player_id", playerID,
		"alternates", len(p.Alternates),
		"related", len(p.RelatedPlayers),
		"edges", len(p.Edges),
		"duration", time.Since(start),
	)

	return p, nil
}
