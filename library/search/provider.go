package search

import "context"

// Provider executes a single query against a search backend.
type Provider interface {
	// Search runs req and returns the decoded payload in provider order.
	Search(ctx context.Context, req Request) (*Response, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (*Response, error)

// Search calls f.
func (f ProviderFunc) Search(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
