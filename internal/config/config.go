package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	CORS        CORSConfig      `mapstructure:"cors"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
}

var AppConfig *Config

// LoadConfig 加载并解析配置文件
func LoadConfig(filepath string) (*Config, error) {
	// 指定配置文件
	viper.SetConfigFile(filepath)

	// 从文件读取配置
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	// 解码到结构体
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// DATABASE_URL 环境变量优先于配置文件，存在时选择 PostgreSQL 后端
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Environment = env
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/mecha_board.db"
	}

	AppConfig = &cfg
	return &cfg, nil
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`         // PostgreSQL 连接串，非空时选择客户端/服务器后端
	SQLitePath   string `mapstructure:"sqlite_path"` // 嵌入式后端的数据库文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// UsePostgres 配置了连接串即选择客户端/服务器后端
func (d DatabaseConfig) UsePostgres() bool {
	return d.URL != ""
}

// DSN 返回 PostgreSQL 连接串
// 生产环境强制加密传输（sslmode=require，不校验证书）
func (d DatabaseConfig) DSN(environment string) string {
	dsn := d.URL
	if environment == "production" && !strings.Contains(dsn, "sslmode=") {
		dsn += " sslmode=require"
	}
	return dsn
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type SchedulerConfig struct {
	ScoreSweepEnabled bool `mapstructure:"score_sweep_enabled"`
}
