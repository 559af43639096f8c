package locker

import (
	"context"
	"errors"
	"sort"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var ErrNotAcquired = errors.New("LOCK_NOT_ACQUIRED")

// Locker serializes work on keys. Lock acquires every key, in sorted order,
// and returns a function that releases them all.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

func normalize(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)

	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return out[:n]
}

func lockAll(ctx context.Context, keys []string, acquire func(ctx context.Context, key string) (func(), error)) (func(), error) {
	releases := make([]func(), 0, len(keys))
	unlock := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, key := range normalize(keys) {
		release, err := acquire(ctx, key)
		if err != nil {
			unlock()
			return nil, err
		}
		releases = append(releases, release)
	}

	return unlock, nil
}
