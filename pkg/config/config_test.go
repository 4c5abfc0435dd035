package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, StoreDriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, DefaultAdminEmail, cfg.Setup.DefaultEmail)
	assert.Equal(t, DefaultAdminPassword, cfg.Setup.DefaultPassword)
	assert.Equal(t, DefaultAdminName, cfg.Setup.DefaultName)
	assert.Equal(t, 12, cfg.Setup.BcryptCost)
	assert.Empty(t, cfg.Setup.RegistrationToken)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("APP_ENV", "production")
	v.Set("HTTP_PORT", "9090")
	v.Set("STORE_DRIVER", "memory")
	v.Set("ADMIN_REGISTRATION_TOKEN", "reg-token")
	v.Set("BCRYPT_COST", "10")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, StoreDriverMemory, cfg.DB.Driver)
	assert.Equal(t, "reg-token", cfg.Setup.RegistrationToken)
	assert.Equal(t, 10, cfg.Setup.BcryptCost)
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("STORE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "postgres", Password: "p@ss:word", DBName: "adminsetup", SSLMode: "disable"}
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:5432/adminsetup?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
