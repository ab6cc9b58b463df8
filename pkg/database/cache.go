package database

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ConfigError reports a missing connection setting.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("database: %s is not set; define it in the environment or .env file", e.Setting)
}

// ConnectionError wraps a failed connection attempt. The next Get retries.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database: connect: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Dialer opens a connection and returns it only once it is usable.
type Dialer[H any] func(ctx context.Context, uri string) (H, error)

// Cache holds one lazily opened connection handle for the life of the
// process. Concurrent first callers share a single dial.
type Cache[H any] struct {
	setting string
	uri     string
	dial    Dialer[H]

	mu     sync.RWMutex
	handle H
	ready  bool

	group singleflight.Group
}

// NewCache returns a cache that dials uri on first use. setting is the name
// of the configuration key uri was read from.
func NewCache[H any](setting, uri string, dial Dialer[H]) *Cache[H] {
	return &Cache[H]{setting: setting, uri: uri, dial: dial}
}

// Get returns the cached handle, joining an in-flight dial if there is one.
// Cancelling ctx abandons this caller's wait only; the shared dial continues.
func (c *Cache[H]) Get(ctx context.Context) (H, error) {
	if h, ok := c.cached(); ok {
		return h, nil
	}

	ch := c.group.DoChan("connect", func() (any, error) {
		if h, ok := c.cached(); ok {
			return h, nil
		}
		if c.uri == "" {
			return nil, &ConfigError{Setting: c.setting}
		}

		h, err := c.dial(context.WithoutCancel(ctx), c.uri)
		if err != nil {
			return nil, &ConnectionError{Err: err}
		}

		c.mu.Lock()
		c.handle, c.ready = h, true
		c.mu.Unlock()
		return h, nil
	})

	var zero H
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(H), nil
	}
}

// Connected reports whether a handle has been cached.
func (c *Cache[H]) Connected() bool {
	_, ok := c.cached()
	return ok
}

func (c *Cache[H]) cached() (H, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handle, c.ready
}
