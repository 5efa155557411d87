package classifier

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"biaslens/internal/bayes"
)

// Trained is a built model plus where its training rows came from.
type Trained struct {
	Model  *bayes.Model
	Source string
}

// BuildFunc trains a model from scratch.
type BuildFunc func(ctx context.Context) (*Trained, error)

// Cache memoizes one trained model for the process lifetime. Concurrent callers
// arriving while a build is in flight join that build instead of starting
// another; a failed build is not cached so the next call retries.
type Cache struct {
	build   BuildFunc
	timeout time.Duration
	group   singleflight.Group
	current atomic.Pointer[Trained]
	builds  atomic.Int64
}

// NewCache wraps build. Each build runs detached from the caller's cancellation
// and is bounded by timeout when positive.
func NewCache(build BuildFunc, timeout time.Duration) *Cache {
	return &Cache{build: build, timeout: timeout}
}

// Get returns the cached model, building it on first use.
func (c *Cache) Get(ctx context.Context) (*Trained, error) {
	if t := c.current.Load(); t != nil {
		return t, nil
	}

	ch := c.group.DoChan("model", func() (any, error) {
		if t := c.current.Load(); t != nil {
			return t, nil
		}
		buildCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			buildCtx, cancel = context.WithTimeout(buildCtx, c.timeout)
			defer cancel()
		}

		c.builds.Add(1)
		t, err := c.build(buildCtx)
		if err != nil {
			return nil, err
		}
		if t == nil || t.Model == nil {
			return nil, fmt.Errorf("build returned no model")
		}
		c.current.Store(t)
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Trained), nil
	}
}

// Cached returns the model if one has been built, without triggering a build.
func (c *Cache) Cached() (*Trained, bool) {
	t := c.current.Load()
	return t, t != nil
}

// Builds reports how many training runs have been started.
func (c *Cache) Builds() int64 { return c.builds.Load() }
