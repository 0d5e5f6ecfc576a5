package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"go.uber.org/zap"
)

const (
	datasheetKeyPrefix = "datasheet:"
	datasheetCacheName = "datasheet_url"
)

// DatasheetSource resolves a technical sheet object key to a downloadable URL
type DatasheetSource interface {
	DatasheetURL(ctx context.Context, key string) (string, error)
}

// DatasheetCache memoizes resolved technical sheet URLs. ttl must stay below
// the lifetime of the URLs the source hands out.
type DatasheetCache struct {
	cache  *gocache.Cache
	source DatasheetSource
	ttl    time.Duration
}

// NewDatasheetCache creates a new datasheet URL cache
func NewDatasheetCache(source DatasheetSource, ttl time.Duration) *DatasheetCache {
	return &DatasheetCache{
		cache:  gocache.New(ttl, 2*ttl),
		source: source,
		ttl:    ttl,
	}
}

// URL returns the cached URL for key or resolves it through the source
func (dc *DatasheetCache) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty datasheet key")
	}
	cacheKey := datasheetKeyPrefix + key

	if data, found := dc.cache.Get(cacheKey); found {
		if url, ok := data.(string); ok {
			metrics.CacheHits.WithLabelValues(datasheetCacheName).Inc()
			return url, nil
		}
		logger.Error("Invalid datasheet cache data type", zap.String("key", key))
		dc.cache.Delete(cacheKey)
	}

	metrics.CacheMisses.WithLabelValues(datasheetCacheName).Inc()

	url, err := dc.source.DatasheetURL(ctx, key)
	if err != nil {
		return "", err
	}

	dc.cache.Set(cacheKey, url, dc.ttl)
	metrics.CacheSize.WithLabelValues(datasheetCacheName).Set(float64(dc.cache.ItemCount()))
	logger.Debug("Datasheet URL cached", zap.String("key", key))

	return url, nil
}
