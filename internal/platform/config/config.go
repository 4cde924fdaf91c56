package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是全局配置实例，LoadConfig成功后可在项目任意位置读取。
var Cfg *Config

// Config 结构体与 config/config.yaml 的结构一一对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig 定义了HTTP服务器相关的配置。
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"` // "debug" 或 "release"
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置。
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了持久化存储和Redis的配置。
type DatabaseConfig struct {
	// Driver 选择关系数据库驱动: "sqlite" 或 "postgres"。
	Driver string `mapstructure:"driver"`
	// DSN 是数据库连接串。sqlite驱动下是文件路径。
	DSN   string      `mapstructure:"dsn"`
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig 定义了Redis连接参数。
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig 定义了读路径响应缓存的行为。
type CacheConfig struct {
	// Enabled 为false时所有读路径直接落库，完全不触碰Redis。
	Enabled bool `mapstructure:"enabled"`
	// TTLSeconds 是缓存条目的过期时间（秒）。
	TTLSeconds int `mapstructure:"ttlSeconds"`
}

// TTL 把配置中的秒数转换为time.Duration。
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoadConfig 查找、加载并解析配置文件。
// 在 ./config 和 . 下查找 config.yaml，并允许通过环境变量覆盖，
// 例如 SERVER_ADDRESS=:9090。
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 缺省值，保证没有配置文件时也能以开发模式启动
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "goodnight.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttlSeconds", 600)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失不是致命错误，全部使用默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}
