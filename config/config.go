package config

import (
	"server/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	DatabaseDbPath string

	AdminPassword string
	SessionSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	NotifyFrom   string
	NotifyTo     string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env file")
	}

	viper.AutomaticEnv()

	viper.SetDefault("PORT", 3000)
	viper.SetDefault("DATABASE_PATH", "data/leads.sqlite")
	viper.SetDefault("ADMIN_PASSWORD", "change-me")
	viper.SetDefault("SESSION_SECRET", "dev-secret")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("NOTIFY_FROM", "")
	viper.SetDefault("NOTIFY_TO", "")

	config := Config{
		Port:           viper.GetInt("PORT"),
		DatabaseDbPath: viper.GetString("DATABASE_PATH"),
		AdminPassword:  viper.GetString("ADMIN_PASSWORD"),
		SessionSecret:  viper.GetString("SESSION_SECRET"),
		SMTPHost:       viper.GetString("SMTP_HOST"),
		SMTPPort:       viper.GetInt("SMTP_PORT"),
		SMTPUser:       viper.GetString("SMTP_USER"),
		SMTPPassword:   viper.GetString("SMTP_PASS"),
		NotifyFrom:     viper.GetString("NOTIFY_FROM"),
		NotifyTo:       viper.GetString("NOTIFY_TO"),
	}

	if config.AdminPassword == "change-me" {
		log.Warn("ADMIN_PASSWORD is unset, using insecure default")
	}

	return config, nil
}
