package storage

import (
	"fmt"
	"placestats/internal/providers"
	"placestats/internal/storage/interfaces"
	"placestats/internal/structures"
)

// NewBackend opens the configured driver and wraps it with the slot cache
// and metrics decorators. The returned cleanup closes the backend.
func NewBackend(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) (Backend, func(), error) {
	var backend Backend

	switch conf.Storage.Driver {
	case "memory":
		backend = NewMemoryBackend()
	case "file":
		var compressor interfaces.CompressorInterface
		if conf.Storage.Compress {
			zc, err := NewZstdCompressor()
			if err != nil {
				return nil, nil, err
			}
			compressor = zc
		}
		fb, err := NewFileBackend(conf.Storage.Dir, compressor)
		if err != nil {
			return nil, nil, err
		}
		backend = fb
	case "redis":
		client, err := NewRedisClient(conf.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		backend = NewRedisBackend(client, conf.Storage.Redis.Prefix, conf.Storage.Redis.Timeout)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	logger.Infof(providers.TypeApp, "Storage backend: %s", conf.Storage.Driver)

	backend = NewInstrumentedBackend(NewCachedBackend(backend, cache), metrics)
	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing storage: %s", err)
		}
	}
	return backend, cleanup, nil
}
