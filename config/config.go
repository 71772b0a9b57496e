package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"nmalls-recorrencia/logger"
)

type Config struct {
	Port     string
	GinMode  string
	AppEnv   string
	LogLevel string

	DBURL string

	JWTSecret      string
	JWTExpiryHours int

	AdminEmail    string
	AdminPassword string
	AdminNome     string

	StaticDir   string
	CORSOrigins []string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	Reminder ReminderConfig
}

type ReminderConfig struct {
	Cron     string
	LeadDays int
	Template string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

// Enabled reports whether Twilio credentials are configured.
func (r ReminderConfig) Enabled() bool {
	return r.TwilioAccountSID != "" && r.TwilioAuthToken != ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

const DefaultReminderTemplate = "Olá [NomeCliente], sua próxima compra recorrente está prevista para [DataCompra] no valor de R$ [ValorTotal]. Responda esta mensagem para confirmar!"

// Load reads the .env file (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug().Msg("No .env file found")
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("ADMIN_NOME", "Administrador")
	v.SetDefault("STATIC_DIR", "./public")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("CACHE_TTL_SECONDS", 30)
	v.SetDefault("REMINDER_CRON", "0 9 * * *")
	v.SetDefault("REMINDER_LEAD_DAYS", 1)
	v.SetDefault("REMINDER_TEMPLATE", DefaultReminderTemplate)
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("PORT"),
		GinMode:        v.GetString("GIN_MODE"),
		AppEnv:         v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DBURL:          v.GetString("DB_URL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		AdminNome:      v.GetString("ADMIN_NOME"),
		StaticDir:      v.GetString("STATIC_DIR"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		CacheTTL:       time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		Reminder: ReminderConfig{
			Cron:                 v.GetString("REMINDER_CRON"),
			LeadDays:             v.GetInt("REMINDER_LEAD_DAYS"),
			Template:             v.GetString("REMINDER_TEMPLATE"),
			TwilioAccountSID:     v.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:      v.GetString("TWILIO_AUTH_TOKEN"),
			TwilioPhoneNumber:    v.GetString("TWILIO_PHONE_NUMBER"),
			TwilioWhatsAppNumber: v.GetString("TWILIO_WHATSAPP_NUMBER"),
		},
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	if cfg.JWTExpiryHours <= 0 {
		cfg.JWTExpiryHours = 24
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
