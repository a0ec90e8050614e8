// Package cache keeps fetched blog queries between requests.
//
// Values are stored JSON-encoded, so every hit decodes a fresh copy.
package cache

import (
	"context"
)

const ListKey = "blogs"

// PostKey is the key of a single post query. Invalidating ListKey leaves these untouched.
func PostKey(id string) string {
	return "blog:" + id
}

type QueryCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}
