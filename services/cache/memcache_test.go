package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheStore(t *testing.T) {
	store := NewMemcacheStore("localhost:11211", time.Hour)

	// Test if memcached is available
	_, err := store.client.Get("test")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	defer store.client.Delete(memcacheKey)

	programs := testPrograms()
	assert.NoError(t, store.Save(programs))
	assert.Equal(t, programs, store.Load())

	// An expired envelope is a miss even while memcached still holds it
	store.now = func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}
	assert.Empty(t, store.Load())
}

func TestMemcacheStoreMissingEntry(t *testing.T) {
	store := NewMemcacheStore("localhost:11211", time.Hour)

	_, err := store.client.Get("test")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	store.client.Delete(memcacheKey)
	assert.Empty(t, store.Load())
}
