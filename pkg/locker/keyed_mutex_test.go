package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_Lock(t *testing.T) {
	t.Run("serializes holders of the same key", func(t *testing.T) {
		km := NewKeyedMutex()
		counter := 0
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := km.Lock(context.Background(), "user:1")
				if !assert.NoError(t, err) {
					return
				}
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, counter)
		assert.Equal(t, 0, km.size())
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		km := NewKeyedMutex()
		unlockA, err := km.Lock(context.Background(), "user:1")
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		unlockB, err := km.Lock(ctx, "user:2")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("returns context error while the key is held", func(t *testing.T) {
		km := NewKeyedMutex()
		unlock, err := km.Lock(context.Background(), "user:1")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = km.Lock(ctx, "user:2", "user:1")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, ErrNotAcquired)

		unlock()
		assert.Equal(t, 0, km.size())
	})

	t.Run("duplicate keys are locked once", func(t *testing.T) {
		km := NewKeyedMutex()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		unlock, err := km.Lock(ctx, "user:1", "user:1")
		require.NoError(t, err)
		unlock()
		unlock()
		assert.Equal(t, 0, km.size())
	})

	t.Run("opposite key order does not deadlock", func(t *testing.T) {
		km := NewKeyedMutex()
		var wg sync.WaitGroup
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock, err := km.Lock(ctx, "user:1", "user:2")
				if assert.NoError(t, err) {
					unlock()
				}
			}()
			go func() {
				defer wg.Done()
				unlock, err := km.Lock(ctx, "user:2", "user:1")
				if assert.NoError(t, err) {
					unlock()
				}
			}()
		}
		wg.Wait()
	})
}
