package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A circuit breaker stops calling redis after repeated failures so that an
// outage costs one fast miss per request instead of one dial timeout.
type Client struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
	log    *logrus.Logger
}

// Options configures the underlying redis client.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// New creates a new Redis client.
func New(opts Options, log *logrus.Logger) *Client {
	ro := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.DialTimeout > 0 {
		ro.DialTimeout = opts.DialTimeout
		ro.MaxRetries = -1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	st := gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).
				Warn("cache circuit breaker state changed")
		},
	}

	return &Client{
		client: redis.NewClient(ro),
		cb:     gobreaker.NewCircuitBreaker(st),
		log:    log,
	}
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// State returns the circuit breaker state.
func (c *Client) State() gobreaker.State {
	if c == nil || c.cb == nil {
		return gobreaker.StateClosed
	}
	return c.cb.State()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.cb.Execute(func() (interface{}, error) {
		b, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	if res == nil {
		return nil, nil
	}
	return res.([]byte), nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, _ = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, _ = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, key).Err()
	})
	return nil
}

// Close releases the redis connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
