package providers

import (
	"fmt"
	"path/filepath"
	"placestats/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.redis.prefix", "placestats:")
	v.SetDefault("storage.redis.timeout", 2*time.Second)
	v.SetDefault("cache.ttl", 5*time.Second)
	v.SetDefault("maintenance.interval", time.Hour)
	v.SetDefault("maintenance.historyRetentionDays", 365)
	v.SetDefault("maintenance.statisticsRetentionDays", 365)

	v.BindEnv("logger.level", "PLACESTATS_LOG_LEVEL")
	v.BindEnv("storage.driver", "PLACESTATS_STORAGE_DRIVER")
	v.BindEnv("storage.dir", "PLACESTATS_STORAGE_DIR")
	v.BindEnv("storage.redis.address", "PLACESTATS_REDIS_ADDRESS")
	v.BindEnv("storage.redis.password", "PLACESTATS_REDIS_PASSWORD")
	v.BindEnv("cache.enabled", "PLACESTATS_CACHE_ENABLED")
	v.BindEnv("cache.size", "PLACESTATS_CACHE_SIZE")
	v.BindEnv("identity.initData", "PLACESTATS_TG_INIT_DATA")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PlaceStatsDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
