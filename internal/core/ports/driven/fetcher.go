package driven

import "context"

// Fetcher retrieves raw document bytes from a remote URL.
// HTTP failures surface as domain.ErrUpstream or domain.ErrUpstreamTimeout,
// distinct from parse failures downstream.
type Fetcher interface {
	// Fetch downloads the resource and returns its bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
