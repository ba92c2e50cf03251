package cache

import (
	"context"
	"time"
)

// nullCache backs "serve --no-cache": every lookup misses and frames are
// dropped on write, so each PNG request is rasterized.
type nullCache struct{}

// NewNullCache returns a cache that keeps no frames.
func NewNullCache() Cache { return nullCache{} }

func (nullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }
func (nullCache) Close() error                                             { return nil }
