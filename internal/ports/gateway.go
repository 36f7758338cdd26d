package ports

import (
	"context"
	"net/url"
)

// Gateway is the JSON client for the remote HR service. Paths are relative to the API root.
// Every call attaches the bearer token of the session carried by ctx.
type Gateway interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}
