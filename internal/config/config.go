package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Circulation
		Overdue
		Global
	}

	HTTP struct {
		Port      int32
		Host      string
		ClientURL string // allowed CORS origin for the frontend
	}
	Database struct {
		Path string
	}
	Auth struct {
		TokenSecret   string
		TokenExpiry   time.Duration
		BcryptCost    int
		SecureCookies bool // set to false for local dev without HTTPS

		// Bootstrap administrator, created at startup when no admin exists.
		AdminName     string
		AdminEmail    string
		AdminPassword string
	}
	Circulation struct {
		// StrictTransitions makes "returned" a terminal status: renewing
		// a returned transaction fails instead of silently reopening it.
		StrictTransitions bool
	}
	Overdue struct {
		SweepEnabled  bool
		SweepSchedule string // cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("client_url", "http://localhost:5173")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_expiry", "24h")
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("secure_cookies", false)
	v.SetDefault("admin_name", "Administrator")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("strict_transitions", false)
	v.SetDefault("overdue_sweep_enabled", true)
	v.SetDefault("overdue_sweep_schedule", "0 * * * *") // hourly at :00
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	return &Config{
		HTTP: HTTP{
			Port:      v.GetInt32("port"),
			Host:      v.GetString("host"),
			ClientURL: v.GetString("client_url"),
		},
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Auth: Auth{
			TokenSecret:   v.GetString("jwt_secret"),
			TokenExpiry:   v.GetDuration("token_expiry"),
			BcryptCost:    v.GetInt("bcrypt_cost"),
			SecureCookies: v.GetBool("secure_cookies"),
			AdminName:     v.GetString("admin_name"),
			AdminEmail:    v.GetString("admin_email"),
			AdminPassword: v.GetString("admin_password"),
		},
		Circulation: Circulation{
			StrictTransitions: v.GetBool("strict_transitions"),
		},
		Overdue: Overdue{
			SweepEnabled:  v.GetBool("overdue_sweep_enabled"),
			SweepSchedule: v.GetString("overdue_sweep_schedule"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("shutdown_timeout_in_seconds"),
		},
	}
}
