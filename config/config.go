package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed config.yaml
var DefaultConfigYAML []byte

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Client    ClientConfig    `mapstructure:"client"`
}

// ServerConfig 同步服务器配置
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	Name      string `mapstructure:"name"` // /api/ping 返回的服务器标识
	MaxBodyMB int64  `mapstructure:"max_body_mb"`
}

// StorageConfig 服务端存储配置
type StorageConfig struct {
	Driver string      `mapstructure:"driver"` // json | mysql
	Path   string      `mapstructure:"path"`
	MySQL  MySQLConfig `mapstructure:"mysql"`
}

// MySQLConfig 数据库配置
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// DSN 构建 MySQL 连接字符串
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.Charset)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json | text
	File       string `mapstructure:"file"`   // 为空则只输出到 stdout
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RateLimitConfig 写接口限流
type RateLimitConfig struct {
	SyncPerMinute int `mapstructure:"sync_per_minute"`
}

// ClientConfig 客户端同步配置
type ClientConfig struct {
	DBPath        string        `mapstructure:"db_path"`
	Timeout       time.Duration `mapstructure:"timeout"`      // ping 与探测
	SyncTimeout   time.Duration `mapstructure:"sync_timeout"` // 推送同步
	CheckDelay    time.Duration `mapstructure:"check_delay"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
	Probe         ProbeConfig   `mapstructure:"probe"`
}

// ProbeConfig 局域网服务器探测范围
type ProbeConfig struct {
	Port        int      `mapstructure:"port"`
	Prefixes    []string `mapstructure:"prefixes"`
	First       int      `mapstructure:"first"`
	Last        int      `mapstructure:"last"`
	Concurrency int      `mapstructure:"concurrency"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/suito")
		externalViper.AddConfigPath("$HOME/.suito")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			}
		}
	}

	v.SetEnvPrefix("SUITO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "suito-sync"
	}
	if c.Server.MaxBodyMB <= 0 {
		c.Server.MaxBodyMB = 50
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "json"
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = 3 * time.Second
	}
	if c.Client.SyncTimeout <= 0 {
		c.Client.SyncTimeout = 60 * time.Second
	}
	if c.Client.CheckInterval <= 0 {
		c.Client.CheckInterval = 5 * time.Minute
	}
	if c.Client.Probe.Concurrency <= 0 {
		c.Client.Probe.Concurrency = 1
	}
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s, 标识: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode, GlobalConfig.Server.Name)
	switch GlobalConfig.Storage.Driver {
	case "mysql":
		log.Printf("  存储: mysql %s@%s:%s/%s",
			GlobalConfig.Storage.MySQL.Username,
			GlobalConfig.Storage.MySQL.Host,
			GlobalConfig.Storage.MySQL.Port,
			GlobalConfig.Storage.MySQL.DBName)
	default:
		log.Printf("  存储: json %s", GlobalConfig.Storage.Path)
	}
}
