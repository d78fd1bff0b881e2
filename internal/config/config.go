/**
 * @description
 * Configuration management for the billing backend. Uses viper to load
 * settings from environment variables, giving both binaries one
 * consistent configuration surface.
 */
package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	SupabaseJWTSecret string `mapstructure:"SUPABASE_JWT_SECRET"`
	BusinessTimezone  string `mapstructure:"BUSINESS_TIMEZONE"`
	InternalAPIKey    string `mapstructure:"INTERNAL_API_KEY"`

	WhatsAppBaseURL string `mapstructure:"WHATSAPP_API_BASE_URL"`
	WhatsAppPhoneID string `mapstructure:"WHATSAPP_CLOUD_PHONE_ID"`
	WhatsAppToken   string `mapstructure:"WHATSAPP_CLOUD_TOKEN"`

	ReminderCronSpec    string `mapstructure:"REMINDER_CRON_SPEC"`
	ReminderSendDelayMS int    `mapstructure:"REMINDER_SEND_DELAY_MS"`
	ServerBaseURL       string `mapstructure:"SERVER_BASE_URL"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Argentina/Buenos_Aires")
	// 09:00 business-local; the cron runner itself runs in the business timezone.
	viper.SetDefault("REMINDER_CRON_SPEC", "0 9 * * *")
	viper.SetDefault("REMINDER_SEND_DELAY_MS", 1000)
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("SUPABASE_JWT_SECRET")
	_ = viper.BindEnv("BUSINESS_TIMEZONE")
	_ = viper.BindEnv("INTERNAL_API_KEY")
	_ = viper.BindEnv("WHATSAPP_API_BASE_URL")
	_ = viper.BindEnv("WHATSAPP_CLOUD_PHONE_ID")
	_ = viper.BindEnv("WHATSAPP_CLOUD_TOKEN")
	_ = viper.BindEnv("REMINDER_CRON_SPEC")
	_ = viper.BindEnv("REMINDER_SEND_DELAY_MS")
	_ = viper.BindEnv("SERVER_BASE_URL")

	err = viper.Unmarshal(&config)
	return
}
