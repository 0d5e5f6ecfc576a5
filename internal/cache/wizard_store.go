package cache

import (
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"go.uber.org/zap"
)

const (
	wizardKeyPrefix = "wizard:"
	wizardCacheName = "quote_wizard"
)

// ErrTooManyWizards is returned by Put when the store is at capacity
var ErrTooManyWizards = errors.New("too many open quote sessions")

// WizardStore keeps in-progress quote wizards in memory. Entries expire
// after ttl of inactivity; every Get extends the lifetime.
type WizardStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	max   int
}

// NewWizardStore creates a wizard store. maxEntries <= 0 means unbounded.
func NewWizardStore(ttl, cleanupInterval time.Duration, maxEntries int) *WizardStore {
	s := &WizardStore{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
		max:   maxEntries,
	}
	s.cache.OnEvicted(func(key string, _ interface{}) {
		logger.Debug("Quote wizard evicted", zap.String("key", key))
	})
	return s
}

// Get returns the wizard stored under id and refreshes its expiry
func (s *WizardStore) Get(id string) (*quote.Wizard, bool) {
	key := wizardKeyPrefix + id

	data, found := s.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues(wizardCacheName).Inc()
		return nil, false
	}

	w, ok := data.(*quote.Wizard)
	if !ok {
		logger.Error("Invalid wizard cache data type", zap.String("key", key))
		s.cache.Delete(key)
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(wizardCacheName).Inc()
	s.cache.Set(key, w, s.ttl)
	return w, true
}

// Put stores w under id
func (s *WizardStore) Put(id string, w *quote.Wizard) error {
	key := wizardKeyPrefix + id
	if s.max > 0 {
		if _, exists := s.cache.Get(key); !exists && s.cache.ItemCount() >= s.max {
			return ErrTooManyWizards
		}
	}

	s.cache.Set(key, w, s.ttl)
	metrics.CacheSize.WithLabelValues(wizardCacheName).Set(float64(s.cache.ItemCount()))
	return nil
}

// Delete discards the wizard stored under id
func (s *WizardStore) Delete(id string) {
	s.cache.Delete(wizardKeyPrefix + id)
	metrics.CacheSize.WithLabelValues(wizardCacheName).Set(float64(s.cache.ItemCount()))
}

// Count returns the number of stored wizards, including expired ones not yet cleaned up
func (s *WizardStore) Count() int {
	return s.cache.ItemCount()
}
