package locks

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerializes(t *testing.T) {
	l := NewLocalLocker()
	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "answers:token:t")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.slots)
}

func TestLocalLockerHonorsContext(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Empty(t, l.slots)

	_, err = l.Lock(context.Background(), "other")
	assert.NoError(t, err)
}

// Runs against a real Redis when REDIS_URI is set.
func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_URI")
	if addr == "" {
		t.Skip("REDIS_URI not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	l := NewRedisLocker(client, 200*time.Millisecond)
	key := "test:" + t.Name()

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)

	l2 := NewRedisLocker(client, 200*time.Millisecond)
	l2.wait = 50 * time.Millisecond
	_, err = l2.Lock(context.Background(), key)
	assert.ErrorIs(t, err, ErrNotAcquired)

	unlock()
	unlock2, err := l2.Lock(context.Background(), key)
	require.NoError(t, err)
	unlock2()
}
