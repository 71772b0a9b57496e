package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/nmalls")
	t.Setenv("JWT_SECRET", "segredo")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24, cfg.JWTExpiryHours)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "0 9 * * *", cfg.Reminder.Cron)
	assert.Equal(t, 1, cfg.Reminder.LeadDays)
	assert.Equal(t, DefaultReminderTemplate, cfg.Reminder.Template)
	assert.False(t, cfg.Reminder.Enabled())
	assert.False(t, cfg.IsDevelopment())
}

func TestFromViperOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/nmalls")
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://painel.nmalls.com.br ,")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("REMINDER_LEAD_DAYS", "3")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:3000", "https://painel.nmalls.com.br"}, cfg.CORSOrigins)
	assert.True(t, cfg.Reminder.Enabled())
	assert.Equal(t, 3, cfg.Reminder.LeadDays)
}

func TestFromViperRequiresSecrets(t *testing.T) {
	tests := []struct {
		name    string
		dbURL   string
		secret  string
		wantErr string
	}{
		{name: "missing db url", secret: "x", wantErr: "DB_URL not set"},
		{name: "missing jwt secret", dbURL: "postgres://x", wantErr: "JWT_SECRET not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_URL", tt.dbURL)
			t.Setenv("JWT_SECRET", tt.secret)

			_, err := fromViper(newViper())
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
