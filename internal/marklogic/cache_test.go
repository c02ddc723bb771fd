package marklogic

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStore holds GetDocument until release is closed and records the
// context each call ran with.
type blockingStore struct {
	Client
	started chan context.Context
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingStore) GetDocument(ctx context.Context, _ DocumentURI) ([]byte, error) {
	b.calls.Add(1)
	b.started <- ctx
	<-b.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte("<akomaNtoso/>"), nil
}

// unreachableRedis fails every command quickly, so each lookup is a miss.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCachingClientSharedFetchOutlivesFirstCaller(t *testing.T) {
	store := &blockingStore{started: make(chan context.Context, 2), release: make(chan struct{})}
	cache := NewCachingClient(store, unreachableRedis(t), time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	firstCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.GetDocument(firstCtx, "ewca/civ/2004/632")
		firstErr <- err
	}()

	var fetchCtx context.Context
	select {
	case fetchCtx = <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("store was never called")
	}

	select {
	case err := <-firstErr:
		require.Error(t, err)
		assert.Equal(t, ErrorTimeout, GetCategory(err))
	case <-time.After(2 * time.Second):
		t.Fatal("first caller did not stop at its deadline")
	}
	assert.NoError(t, fetchCtx.Err(), "shared fetch must not inherit the first caller's deadline")

	secondDoc := make(chan []byte, 1)
	secondErr := make(chan error, 1)
	go func() {
		doc, err := cache.GetDocument(context.Background(), "ewca/civ/2004/632")
		secondDoc <- doc
		secondErr <- err
	}()
	close(store.release)

	select {
	case err := <-secondErr:
		require.NoError(t, err)
		assert.Equal(t, "<akomaNtoso/>", string(<-secondDoc))
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
	// The second caller either joined the shared fetch or ran its own.
	assert.LessOrEqual(t, store.calls.Load(), int32(2))
}
