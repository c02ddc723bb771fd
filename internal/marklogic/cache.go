package marklogic

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	documentKeyPrefix     = "caselaw:doc:"
	lastModifiedKeyPrefix = "caselaw:lastmod:"
)

// CachingClient caches document bodies and last-modified stamps in Redis.
// The cache is best-effort: Redis failures are logged and the request goes to
// the store. Store failures are never cached and always reach the caller.
type CachingClient struct {
	Client
	redis  *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachingClient wraps next with a Redis cache holding entries for ttl.
func NewCachingClient(next Client, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachingClient {
	return &CachingClient{
		Client: next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetDocument serves the document from Redis when present. Concurrent misses
// for the same document share one store request.
func (c *CachingClient) GetDocument(ctx context.Context, uri DocumentURI) ([]byte, error) {
	key := documentKeyPrefix + string(uri)
	if cached, ok := c.lookup(ctx, "document", key); ok {
		return []byte(cached), nil
	}

	v, err := c.shared(ctx, "get_document", key, func(ctx context.Context) (any, error) {
		doc, err := c.Client.GetDocument(ctx, uri)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// DocumentExists answers from the cached body when there is one.
func (c *CachingClient) DocumentExists(ctx context.Context, uri DocumentURI) (bool, error) {
	n, err := c.redis.Exists(ctx, documentKeyPrefix+string(uri)).Result()
	switch {
	case err != nil:
		c.cacheError(ctx, "exists", err)
	case n > 0:
		cacheRequests.WithLabelValues("exists", "hit").Inc()
		return true, nil
	default:
		cacheRequests.WithLabelValues("exists", "miss").Inc()
	}
	return c.Client.DocumentExists(ctx, uri)
}

// GetLastModified caches non-empty stamps only.
func (c *CachingClient) GetLastModified(ctx context.Context, uri DocumentURI) (string, error) {
	key := lastModifiedKeyPrefix + string(uri)
	if cached, ok := c.lookup(ctx, "last_modified", key); ok {
		return cached, nil
	}

	v, err := c.shared(ctx, "get_last_modified", key, func(ctx context.Context) (any, error) {
		stamp, err := c.Client.GetLastModified(ctx, uri)
		if err != nil {
			return "", err
		}
		if stamp != "" {
			c.store(ctx, key, []byte(stamp))
		}
		return stamp, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// PutDocument writes through and drops the cached entries for the document.
func (c *CachingClient) PutDocument(ctx context.Context, uri DocumentURI, xml []byte) error {
	if err := c.Client.PutDocument(ctx, uri, xml); err != nil {
		return err
	}
	if err := c.redis.Del(ctx, documentKeyPrefix+string(uri), lastModifiedKeyPrefix+string(uri)).Err(); err != nil {
		c.cacheError(ctx, "invalidate", err)
	}
	return nil
}

// shared runs fetch once for all concurrent callers of key. fetch gets a
// context that keeps the first caller's values but not its cancellation;
// each caller stops waiting when its own context ends.
func (c *CachingClient) shared(ctx context.Context, op, key string, fetch func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fetch(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewTransportError(ErrorTimeout, op, "request timed out", ctx.Err())
		}
		return nil, NewTransportError(ErrorInternal, op, "request cancelled", ctx.Err())
	}
}

func (c *CachingClient) lookup(ctx context.Context, kind, key string) (string, bool) {
	val, err := c.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		cacheRequests.WithLabelValues(kind, "miss").Inc()
		return "", false
	}
	if err != nil {
		c.cacheError(ctx, kind, err)
		return "", false
	}
	cacheRequests.WithLabelValues(kind, "hit").Inc()
	return val, true
}

func (c *CachingClient) store(ctx context.Context, key string, value []byte) {
	if err := c.redis.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.cacheError(ctx, "store", err)
	}
}

func (c *CachingClient) cacheError(ctx context.Context, kind string, err error) {
	cacheRequests.WithLabelValues(kind, "error").Inc()
	c.logger.WarnContext(ctx, "document cache unavailable",
		"operation", kind,
		"error", err,
	)
}
