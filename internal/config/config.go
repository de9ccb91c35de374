package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Env           string `mapstructure:"ENV"`
	Port          string `mapstructure:"PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN" validate:"required"`
	SheetID       string `mapstructure:"SHEET_ID" validate:"required"`

	// GoogleKey holds the service-account key, either raw JSON or base64.
	GoogleKey string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_KEY" validate:"required"`

	RecordSheet string `mapstructure:"RECORD_SHEET"`
	MasterSheet string `mapstructure:"MASTER_SHEET"`

	// PublicURL switches the bot from long polling to a webhook served on Port.
	PublicURL     string `mapstructure:"PUBLIC_URL"`
	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`
}

func (c Config) UseWebhook() bool {
	return c.PublicURL != ""
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RECORD_SHEET", "REKAPAN QUALITY")
	v.SetDefault("MASTER_SHEET", "MASTER")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
