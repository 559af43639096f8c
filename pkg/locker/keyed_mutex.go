package locker

import (
	"context"
	"fmt"
	"sync"
)

var _ Locker = (*KeyedMutex)(nil)

// KeyedMutex is an in-process Locker. Entries are dropped once no goroutine
// holds or waits on the key.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

func (k *KeyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	return lockAll(ctx, keys, k.acquire)
}

func (k *KeyedMutex) acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-l.ch
				k.unref(key, l)
			})
		}, nil
	case <-ctx.Done():
		k.unref(key, l)
		return nil, fmt.Errorf("acquire %s: %w: %w", key, ErrNotAcquired, ctx.Err())
	}
}

func (k *KeyedMutex) unref(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
