package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL(), "la sesión dura 7 días por defecto")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.App.IsProduction())
}

func TestValidate_SinSecret(t *testing.T) {
	cfg := config.FromViper(viper.New())
	assert.Error(t, cfg.Validate(), "sin JWT_SECRET la app no debe arrancar")

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_StoreDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("APP_STORE", "mongo")
	assert.Error(t, config.FromViper(v).Validate())
}

func TestFromViper_EnteroComoString(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("JWT_EXPIRATION_MINUTES", "no-numero")

	cfg := config.FromViper(v)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 7*24*60, cfg.JWT.Expiration, "un valor inválido cae al valor por defecto")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "shop", SSLMode: "disable"}
	dsn := db.ConnectionString()
	require.Contains(t, dsn, "postgres://app:p%40ss%3Aword@db:5432/shop")
	assert.Contains(t, dsn, "sslmode=disable")

	db.DatabaseURL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", db.ConnectionString())
}
