package config

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	AuthModeStatic = "static"
	AuthModeJWT    = "jwt"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	StoreDriver          string `mapstructure:"STORE_DRIVER"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	AuthMode             string `mapstructure:"AUTH_MODE"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours       int    `mapstructure:"JWT_EXPIRY_HOURS"`
	SeedOnStartup        bool   `mapstructure:"SEED_ON_STARTUP"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	SMTPHost             string `mapstructure:"SMTP_HOST"`
	SMTPPort             int    `mapstructure:"SMTP_PORT"`
	SMTPUser             string `mapstructure:"SMTP_USER"`
	SMTPPassword         string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom             string `mapstructure:"SMTP_FROM"`
	SupportInbox         string `mapstructure:"SUPPORT_INBOX"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "STORE_DRIVER",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"AUTH_MODE", "JWT_SECRET", "JWT_EXPIRY_HOURS",
	"SEED_ON_STARTUP", "SCHEDULER_ENABLED",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "SMTP_FROM", "SUPPORT_INBOX",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()
	setDefaults()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("STORE_DRIVER")
	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"storeDriver", config.StoreDriver,
		"authMode", config.AuthMode,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("AUTH_MODE", AuthModeStatic)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SEED_ON_STARTUP", true)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SMTP_PORT", 587)
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	switch config.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return log.Error("Fatal error: unknown store driver", "driver", config.StoreDriver)
	}

	switch config.AuthMode {
	case AuthModeStatic:
	case AuthModeJWT:
		if config.JWTSecret == "" {
			return log.Error("Fatal error: JWT_SECRET required when AUTH_MODE is jwt")
		}
		if config.JWTExpiryHours <= 0 {
			return log.Error("Fatal error: invalid JWT expiry", "hours", config.JWTExpiryHours)
		}
	default:
		return log.Error("Fatal error: unknown auth mode", "authMode", config.AuthMode)
	}

	if config.SMTPHost != "" && config.SupportInbox == "" {
		return log.Error("Fatal error: SUPPORT_INBOX required when SMTP_HOST is set")
	}

	ConfigInstance = config
	return nil
}
