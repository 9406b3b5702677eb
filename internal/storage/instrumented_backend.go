package storage

import (
	"errors"
	"placestats/internal/providers"
	"time"
)

type InstrumentedBackend struct {
	inner   Backend
	metrics providers.MetricsProviderInterface
}

func NewInstrumentedBackend(inner Backend, metrics providers.MetricsProviderInterface) *InstrumentedBackend {
	return &InstrumentedBackend{inner: inner, metrics: metrics}
}

func (b *InstrumentedBackend) Read(key string) ([]byte, error) {
	data, err := b.inner.Read(key)
	b.metrics.IncSlotOperation(key, "read", err == nil || errors.Is(err, ErrSlotNotFound))
	return data, err
}

func (b *InstrumentedBackend) Write(key string, data []byte) error {
	start := time.Now()
	err := b.inner.Write(key, data)
	b.metrics.ObservePersistenceDuration(key, time.Since(start))
	b.metrics.IncSlotOperation(key, "write", err == nil)
	if err == nil {
		b.metrics.SetSlotSize(key, len(data))
	}
	return err
}

func (b *InstrumentedBackend) Delete(key string) error {
	err := b.inner.Delete(key)
	b.metrics.IncSlotOperation(key, "delete", err == nil)
	if err == nil {
		b.metrics.SetSlotSize(key, 0)
	}
	return err
}

func (b *InstrumentedBackend) Close() error {
	return b.inner.Close()
}
