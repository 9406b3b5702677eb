package providers

import (
	"errors"
	"placestats/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	switch cv.conf.Storage.Driver {
	case "file":
		if cv.conf.Storage.Dir == "" {
			return errors.New("storage.dir is required for the file driver")
		}
	case "redis":
		if cv.conf.Storage.Redis.Address == "" {
			return errors.New("storage.redis.address is required for the redis driver")
		}
	}

	if cv.conf.Maintenance.HistoryRetentionDays < 0 || cv.conf.Maintenance.StatisticsRetentionDays < 0 {
		return errors.New("maintenance retention days must not be negative")
	}
	return nil
}
