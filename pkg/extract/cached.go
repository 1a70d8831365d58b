package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/cache"
	"github.com/licaudit/licaudit/pkg/observability"
)

// DefaultSnapshotTTL bounds how long an extraction snapshot is reused.
// Walking node_modules dominates scan time; a short TTL keeps repeat runs
// fast without hiding dependency changes for long.
const DefaultSnapshotTTL = 15 * time.Minute

// CachedSource wraps a source with snapshot caching keyed by ecosystem
// and scan root.
type CachedSource struct {
	inner   audit.Source
	cache   cache.Cache
	key     string
	ttl     time.Duration
	refresh bool
}

// WithCache wraps src so its output is cached under (ecosystem, root).
// A nil cache returns src unchanged; refresh bypasses reads but still
// updates the snapshot.
func WithCache(src audit.Source, c cache.Cache, root string, ttl time.Duration, refresh bool) audit.Source {
	if c == nil {
		return src
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &CachedSource{
		inner:   src,
		cache:   c,
		key:     cache.Key("extract", string(src.Ecosystem()), root),
		ttl:     ttl,
		refresh: refresh,
	}
}

// Ecosystem returns the wrapped source's ecosystem.
func (s *CachedSource) Ecosystem() audit.Ecosystem {
	return s.inner.Ecosystem()
}

// Extract returns the cached snapshot when present and fresh, otherwise
// delegates to the wrapped source and stores the result. Cache errors
// degrade to a fresh extraction, never to a failed scan.
func (s *CachedSource) Extract(ctx context.Context) ([]audit.Record, error) {
	eco := string(s.inner.Ecosystem())

	if !s.refresh {
		if data, hit, err := s.cache.Get(ctx, s.key); err == nil && hit {
			var recs []audit.Record
			if json.Unmarshal(data, &recs) == nil {
				observability.Cache().OnCacheHit(ctx, eco)
				return recs, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, eco)
	}

	recs, err := s.inner.Extract(ctx)
	if err != nil {
		return recs, err
	}

	if data, merr := json.Marshal(recs); merr == nil {
		if s.cache.Set(ctx, s.key, data, s.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, eco, len(data))
		}
	}
	return recs, nil
}

var _ audit.Source = (*CachedSource)(nil)
