package services

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/amsync/internal/models"
	"github.com/patrickmn/go-cache"
)

// CachedService memoizes SearchTracks results of the wrapped [Service].
//
// Only successful searches are cached. Every other method passes through.
type CachedService struct {
	Service
	cache *cache.Cache
}

// NewCachedService wraps svc with a search cache whose entries expire after ttl.
func NewCachedService(svc Service, ttl time.Duration) *CachedService {
	return &CachedService{Service: svc, cache: cache.New(ttl, 2*ttl)}
}

// SearchTracks returns a cached result for (query, limit) or delegates to the wrapped service.
func (c *CachedService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	key := fmt.Sprintf("%d|%s", limit, query)
	if hit, ok := c.cache.Get(key); ok {
		cached := hit.([]models.Candidate)
		out := make([]models.Candidate, len(cached))
		copy(out, cached)
		return out, nil
	}

	candidates, err := c.Service.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, candidates)
	return candidates, nil
}

// Flush drops every cached search.
func (c *CachedService) Flush() {
	c.cache.Flush()
}
