package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultEnv          = EnvLocal
	defaultLogLevel     = "info"
	defaultConfigDir    = ".gophvault"
	defaultSyncInterval = 300
	defaultSyncTimeout  = 60
	defaultHTTPTimeout  = 30
	defaultAgentAddress = "127.0.0.1:7733"

	dataFile        = "vault.db"
	credentialsFile = "credentials.json"
)

type Config struct {
	Env             string
	SupabaseURL     string
	SupabaseAnonKey string
	LogLevel        string
	// LogFile пуст - логи пишутся в stderr
	LogFile         string
	ConfigDir       string
	DataPath        string
	CredentialsPath string
	SyncInterval    time.Duration
	SyncTimeout     time.Duration
	HTTPTimeout     time.Duration
	AgentAddress    string
	AgentToken      string
}

// MustLoad загружает конфигурацию и паникует при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom читает переменные из envFile вместо поиска .env.
// Уже заданные переменные окружения не перезаписываются.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("ошибка чтения %s: %w", envFile, err)
		}
	} else {
		loadDotEnv()
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", "")
	v.SetDefault("SYNC_INTERVAL_SECONDS", defaultSyncInterval)
	v.SetDefault("SYNC_TIMEOUT_SECONDS", defaultSyncTimeout)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout)
	v.SetDefault("AGENT_ADDRESS", defaultAgentAddress)

	return fromViper(v)
}

func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, defaultConfigDir)
	}

	dataPath := v.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, dataFile)
	}
	credentialsPath := v.GetString("CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(configDir, credentialsFile)
	}

	cfg := &Config{
		Env:             v.GetString("APP_ENV"),
		SupabaseURL:     v.GetString("SUPABASE_URL"),
		SupabaseAnonKey: v.GetString("SUPABASE_ANON_KEY"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFile:         v.GetString("LOG_FILE"),
		ConfigDir:       configDir,
		DataPath:        dataPath,
		CredentialsPath: credentialsPath,
		SyncInterval:    time.Duration(v.GetInt("SYNC_INTERVAL_SECONDS")) * time.Second,
		SyncTimeout:     time.Duration(v.GetInt("SYNC_TIMEOUT_SECONDS")) * time.Second,
		HTTPTimeout:     time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
		AgentAddress:    v.GetString("AGENT_ADDRESS"),
		AgentToken:      v.GetString("AGENT_TOKEN"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.Required, validation.In(EnvLocal, EnvDev, EnvProd)),
		validation.Field(&c.SupabaseURL, validation.Required.Error("SUPABASE_URL не задан"), is.URL),
		validation.Field(&c.SupabaseAnonKey, validation.Required.Error("SUPABASE_ANON_KEY не задан")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.SyncInterval, validation.Min(time.Second)),
		validation.Field(&c.SyncTimeout, validation.Min(time.Second)),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Second)),
		validation.Field(&c.AgentAddress, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.SyncTimeout > c.SyncInterval {
		return errors.New("invalid config: SYNC_TIMEOUT_SECONDS больше SYNC_INTERVAL_SECONDS")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
