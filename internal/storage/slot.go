package storage

import (
	"bytes"
	"errors"
	"placestats/internal/providers"

	json "github.com/goccy/go-json"
)

// Slot reads and writes one JSON document of a Backend. Read and decode
// failures degrade to the empty value; write failures are reported as false.
// Both are logged, neither is returned to the caller.
type Slot[T any] struct {
	key     string
	backend Backend
	logger  providers.Logger
	empty   func() T
}

func NewSlot[T any](key string, backend Backend, logger providers.Logger, empty func() T) *Slot[T] {
	return &Slot[T]{
		key:     key,
		backend: backend,
		logger:  logger,
		empty:   empty,
	}
}

func (s *Slot[T]) Key() string {
	return s.key
}

func (s *Slot[T]) Load() T {
	data, ok := s.LoadRaw()
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return s.empty()
	}

	value := s.empty()
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warnf(providers.TypeStorage, "Unable to decode slot %s, using empty value: %s", s.key, err)
		return s.empty()
	}
	return value
}

// LoadRaw returns the stored bytes; ok is false when the slot is absent or
// unreadable.
func (s *Slot[T]) LoadRaw() ([]byte, bool) {
	data, err := s.backend.Read(s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.logger.Warnf(providers.TypeStorage, "Unable to read slot %s: %s", s.key, err)
		}
		return nil, false
	}
	return data, true
}

func (s *Slot[T]) Save(value T) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Errorf(providers.TypeStorage, "Unable to encode slot %s: %s", s.key, err)
		return false
	}
	return s.SaveRaw(data)
}

func (s *Slot[T]) SaveRaw(data []byte) bool {
	if err := s.backend.Write(s.key, data); err != nil {
		s.logger.Errorf(providers.TypeStorage, "Unable to write slot %s: %s", s.key, err)
		return false
	}
	return true
}

func (s *Slot[T]) Clear() bool {
	if err := s.backend.Delete(s.key); err != nil {
		s.logger.Errorf(providers.TypeStorage, "Unable to delete slot %s: %s", s.key, err)
		return false
	}
	return true
}
