package storage

import "placestats/internal/providers"

const slotCachePrefix = "slot:"

// CachedBackend serves repeated slot reads from the shared cache and keeps
// it current on every write.
type CachedBackend struct {
	inner Backend
	cache providers.CacheProviderInterface
}

func NewCachedBackend(inner Backend, cache providers.CacheProviderInterface) *CachedBackend {
	return &CachedBackend{inner: inner, cache: cache}
}

func (c *CachedBackend) Read(key string) ([]byte, error) {
	if data, ok := c.cache.Get(slotCachePrefix + key); ok {
		return data, nil
	}
	data, err := c.inner.Read(key)
	if err != nil {
		return nil, err
	}
	c.cache.Set(slotCachePrefix+key, data)
	return data, nil
}

// Write evicts before caching the new document: the cache may refuse a large
// value, and the previous one must not outlive it.
func (c *CachedBackend) Write(key string, data []byte) error {
	c.cache.Del(slotCachePrefix + key)
	if err := c.inner.Write(key, data); err != nil {
		return err
	}
	c.cache.Set(slotCachePrefix+key, data)
	return nil
}

func (c *CachedBackend) Delete(key string) error {
	c.cache.Del(slotCachePrefix + key)
	return c.inner.Delete(key)
}

func (c *CachedBackend) Close() error {
	return c.inner.Close()
}
