package storage

import "errors"

// Slot keys of the four persisted documents.
const (
	HistorySlot         = "historyData"
	PlaceStatisticsSlot = "placeStatisticsData"
	StatisticsSlot      = "statisticsData"
	UserSlot            = "userData"
)

var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrInvalidKey   = errors.New("invalid slot key")
)

// Backend is a key-value medium holding one JSON document per slot.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
	Close() error
}
