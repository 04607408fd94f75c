package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 是应用程序配置的结构体
type Config struct {
	TCPServer        TCPServerConfig        `mapstructure:"tcpServer"`
	HTTPAPIServer    HTTPAPIServerConfig    `mapstructure:"httpApiServer"`
	Redis            RedisConfig            `mapstructure:"redis"`
	NATS             NATSConfig             `mapstructure:"nats"`
	Logger           LoggerConfig           `mapstructure:"logger"`
	DeviceConnection DeviceConnectionConfig `mapstructure:"deviceConnection"`
}

// TCPServerConfig TCP服务器配置
type TCPServerConfig struct {
	Host                       string     `mapstructure:"host"`
	Port                       int        `mapstructure:"port"`
	Zinx                       ZinxConfig `mapstructure:"zinx"`
	InitialReadDeadlineSeconds int        `mapstructure:"initialReadDeadlineSeconds"` // 注册前的读取超时
	DefaultReadDeadlineSeconds int        `mapstructure:"defaultReadDeadlineSeconds"` // 注册后的读取超时
}

// ZinxConfig Zinx框架配置
type ZinxConfig struct {
	Name             string `mapstructure:"name"`
	Version          string `mapstructure:"version"`
	MaxConn          int    `mapstructure:"maxConn"`
	WorkerPoolSize   int    `mapstructure:"workerPoolSize"`
	MaxWorkerTaskLen int    `mapstructure:"maxWorkerTaskLen"`
	MaxPacketSize    uint32 `mapstructure:"maxPacketSize"`
}

// HTTPAPIServerConfig HTTP API服务器配置
type HTTPAPIServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
	DialTimeout  int    `mapstructure:"dialTimeout"`
	ReadTimeout  int    `mapstructure:"readTimeout"`
	WriteTimeout int    `mapstructure:"writeTimeout"`
}

// NATSConfig 消息总线配置
type NATSConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subjectPrefix"`
	Name          string `mapstructure:"name"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"`
	FilePath      string `mapstructure:"filePath"`
	MaxSizeMB     int    `mapstructure:"maxSizeMB"`
	MaxBackups    int    `mapstructure:"maxBackups"`
	MaxAgeDays    int    `mapstructure:"maxAgeDays"`
	LogHexDump    bool   `mapstructure:"logHexDump"`
	EnableConsole bool   `mapstructure:"enableConsole"`
}

// DeviceConnectionConfig 设备连接配置
type DeviceConnectionConfig struct {
	HeartbeatTimeoutSeconds int `mapstructure:"heartbeatTimeoutSeconds"`
	SessionTimeoutMinutes   int `mapstructure:"sessionTimeoutMinutes"`
}

// 全局配置实例
var GlobalConfig Config

// Load 加载配置文件
func Load(configPath string) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return &GlobalConfig
}

// FormatHTTPAddress 格式化HTTP服务器地址为host:port格式
func FormatHTTPAddress() string {
	cfg := GetConfig().HTTPAPIServer
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// FormatTCPAddress 格式化TCP服务器地址为host:port格式
func FormatTCPAddress() string {
	cfg := GetConfig().TCPServer
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
