package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
}

type StorageConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	ServiceKey  string `mapstructure:"service_key"`
	PhotoBucket string `mapstructure:"photo_bucket"`
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	ChatModel string `mapstructure:"chat_model"`
	Voice     string `mapstructure:"voice"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Model   string   `mapstructure:"model"`
	URLs    []string `mapstructure:"urls"`
}

type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Channel    string `mapstructure:"channel"`
}

type RTCConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	URL       string `mapstructure:"url"`
}

type AgentConfig struct {
	SessionTTLMins int64 `mapstructure:"session_ttl_mins"`
	HistoryBound   int   `mapstructure:"history_bound"`
}

// SessionTTL is how long an idle voice session survives before eviction.
func (a AgentConfig) SessionTTL() time.Duration {
	mins := a.SessionTTLMins
	if mins <= 0 {
		mins = 30
	}
	return time.Duration(mins) * time.Minute
}

type LeadConfig struct {
	SessionCacheTTLMins int64 `mapstructure:"session_cache_ttl_mins"`
}

func (l LeadConfig) SessionCacheTTL() time.Duration {
	mins := l.SessionCacheTTLMins
	if mins <= 0 {
		mins = 60
	}
	return time.Duration(mins) * time.Minute
}

type Settings struct {
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	RTC     RTCConfig     `mapstructure:"rtc"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Lead    LeadConfig    `mapstructure:"lead"`
	Env     string        `mapstructure:"env"`
	Port    int           `mapstructure:"port"`
	Debug   bool          `mapstructure:"debug" default:"false"`
}

func Load() (*Settings, error) {
	// Load settings from a configuration file or environment variables
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
