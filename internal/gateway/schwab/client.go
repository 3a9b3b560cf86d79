// Package schwab is a REST adapter for the Schwab trader and market data APIs.
// It implements quotes, market hours, account resolution, order submission
// and position listing.
package schwab

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.schwabapi.com"

// Options configures the client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RetryCount is the number of extra attempts for idempotent reads.
	RetryCount int
	// RetryWait is the fixed pause between attempts.
	RetryWait time.Duration
	// RequestsPerSecond paces all calls. Zero disables pacing.
	RequestsPerSecond float64
	Proxy             string
	// Location is the market timezone used to pick the trading date.
	// Nil means America/New_York.
	Location *time.Location
}

// DefaultOptions mirrors the deployed profile: three attempts five seconds apart.
func DefaultOptions() Options {
	return Options{
		BaseURL:           DefaultBaseURL,
		Timeout:           15 * time.Second,
		RetryCount:        3,
		RetryWait:         5 * time.Second,
		RequestsPerSecond: 2,
	}
}

// Client talks to the broker. Reads retry, order submissions never do.
type Client struct {
	reads   *resty.Client
	orders  *resty.Client
	limiter *rate.Limiter
	loc     *time.Location
	logger  *zap.Logger
}

// New builds a client from opts.
func New(opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	reads := newResty(opts).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		}).
		AddRetryHook(func(r *resty.Response, err error) {
			var fields []zap.Field
			if r != nil && r.Request != nil {
				fields = append(fields, zap.Int("attempt", r.Request.Attempt), zap.String("url", r.Request.URL))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			} else if r != nil {
				fields = append(fields, zap.Int("status", r.StatusCode()))
			}
			logger.Warn("broker request failed, retrying", fields...)
		})

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond * 2)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	loc := opts.Location
	if loc == nil {
		var err error
		if loc, err = time.LoadLocation("America/New_York"); err != nil {
			loc = time.UTC
		}
	}

	return &Client{
		reads:   reads,
		orders:  newResty(opts),
		limiter: limiter,
		loc:     loc,
		logger:  logger,
	}
}

func newResty(opts Options) *resty.Client {
	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}
	return c
}

func (c *Client) read(ctx context.Context, token string) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.reads.R().SetContext(ctx).SetAuthToken(token), nil
}
