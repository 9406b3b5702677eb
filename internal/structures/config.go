package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type RedisConfig struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Driver   string      `yaml:"driver" validate:"required|in:memory,file,redis"`
	Dir      string      `yaml:"dir"`
	Compress bool        `yaml:"compress"`
	Redis    RedisConfig `yaml:"redis"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MaintenanceConfig struct {
	Interval                time.Duration `yaml:"interval"`
	HistoryRetentionDays    int           `yaml:"historyRetentionDays"`
	StatisticsRetentionDays int           `yaml:"statisticsRetentionDays"`
}

type IdentityConfig struct {
	InitData string `yaml:"initData"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Storage     StorageConfig     `yaml:"storage"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Identity    IdentityConfig    `yaml:"identity"`
}
