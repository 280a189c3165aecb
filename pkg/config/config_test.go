package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Telemetry.OnlineThreshold)
	assert.Equal(t, 5*time.Minute, cfg.Telemetry.GapThreshold)
	assert.Equal(t, 10, cfg.Telemetry.DashboardSignals)
	assert.Equal(t, 7*24*time.Hour, cfg.Telemetry.ChangesWindow)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.False(t, cfg.MQTT.Enabled(), "sin MQTT_BROKER la ingesta MQTT queda deshabilitada")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TELEMETRY_GAP_THRESHOLD", "90s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Telemetry.GapThreshold)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.MQTT.Enabled())
}

func TestLoad_DuracionInvalidaUsaDefault(t *testing.T) {
	t.Setenv("TELEMETRY_ONLINE_THRESHOLD", "cinco minutos")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Telemetry.OnlineThreshold)
}

func TestLoad_ProductionSinSecretFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, config.AppConfig{}.Location())
	assert.Equal(t, time.UTC, config.AppConfig{Timezone: "Nowhere/Invalid"}.Location())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "iot", Password: "p@ss:word", DBName: "iot_dev", SSLMode: "disable"}
	assert.Equal(t, "postgres://iot:p%40ss%3Aword@db:5432/iot_dev?sslmode=disable", c.ConnectionString())
}
