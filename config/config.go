package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	VendorGemini     = "gemini"
	VendorOpenAi     = "openai"
	VendorOpenRouter = "openrouter"
)

type Config struct {
	Env              string
	Server           Server
	LogConfig        LogConfig
	HTTP             HTTP
	RelayConfig      RelayConfig
	VendorConfig     VendorConfig
	GeminiConfig     AiConfig
	OpenAiConfig     AiConfig
	OpenRouterConfig AiConfig
	OtelConfig       OtelConfig
}

type OtelConfig struct {
	Endpoint string
}

type AiConfig struct {
	ApiKey  string
	Model   string
	BaseUrl string
}

// VendorConfig selects the one vendor this process relays to.
type VendorConfig struct {
	Provider string
}

type RelayConfig struct {
	// SystemInstructionPath replaces the embedded system instruction when set.
	SystemInstructionPath string
}

type Server struct {
	Name         string
	Port         string
	TimeZone     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level string
}

type HTTP struct {
	TimeOut            time.Duration
	MaxIdleConn        int
	MaxIdleConnPerHost int
	MaxConnPerHost     int
}

var envBindings = map[string]string{
	"GeminiConfig.ApiKey":     "GEMINI_API_KEY",
	"OpenAiConfig.ApiKey":     "OPENAI_API_KEY",
	"OpenRouterConfig.ApiKey": "OPENROUTER_API_KEY",
	"LogConfig.Level":         "LOG_LEVEL",
	"Server.Port":             "PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Env", "local")

	v.SetDefault("Server.Name", "deployo")
	v.SetDefault("Server.Port", "8000")
	v.SetDefault("Server.TimeZone", "")
	v.SetDefault("Server.ReadTimeout", 30*time.Second)
	v.SetDefault("Server.WriteTimeout", 5*time.Minute)
	v.SetDefault("Server.IdleTimeout", 60*time.Second)

	v.SetDefault("LogConfig.Level", "info")

	v.SetDefault("HTTP.TimeOut", time.Duration(0))
	v.SetDefault("HTTP.MaxIdleConn", 100)
	v.SetDefault("HTTP.MaxIdleConnPerHost", 20)
	v.SetDefault("HTTP.MaxConnPerHost", 0)

	v.SetDefault("RelayConfig.SystemInstructionPath", "")
	v.SetDefault("VendorConfig.Provider", VendorGemini)

	v.SetDefault("GeminiConfig.ApiKey", "")
	v.SetDefault("GeminiConfig.Model", "gemini-1.5-pro-latest")
	v.SetDefault("GeminiConfig.BaseUrl", "")
	v.SetDefault("OpenAiConfig.ApiKey", "")
	v.SetDefault("OpenAiConfig.Model", "gpt-4o-mini")
	v.SetDefault("OpenAiConfig.BaseUrl", "")
	v.SetDefault("OpenRouterConfig.ApiKey", "")
	v.SetDefault("OpenRouterConfig.Model", "google/gemini-pro-1.5")
	v.SetDefault("OpenRouterConfig.BaseUrl", "")

	v.SetDefault("OtelConfig.Endpoint", "")
}

func InitConfig() (*Config, error) {
	// a missing .env is fine, the process env still applies
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	configPath, ok := os.LookupEnv("API_CONFIG_PATH")
	if !ok {
		configPath = "./config"
	}

	configName, ok := os.LookupEnv("API_CONFIG_NAME")
	if !ok {
		configName = "config"
	}

	v.SetConfigName(configName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("config file not found. using default/env config: " + err.Error())
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", env)
		}
	}

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	c.VendorConfig.Provider = strings.ToLower(strings.TrimSpace(c.VendorConfig.Provider))

	return &c, nil
}

// Vendor returns the settings of the selected vendor.
func (c *Config) Vendor() AiConfig {
	switch c.VendorConfig.Provider {
	case VendorOpenAi:
		return c.OpenAiConfig
	case VendorOpenRouter:
		return c.OpenRouterConfig
	default:
		return c.GeminiConfig
	}
}

func InitTimeZone(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return errors.Wrapf(err, "load time zone %q", name)
	}
	time.Local = loc
	return nil
}
