package config

import (
	"github.com/spf13/viper"
)

// Config concentra la configuración de runtime, cargada de variables de
// entorno (con .env opcional para desarrollo).
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Store local (SQLite embebido)
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// Store remoto. Vacío = modo solo-local; presente = modo híbrido.
	// Se evalúa una vez al arrancar y se inyecta en los repositorios.
	RemoteRedisURL string `mapstructure:"REMOTE_REDIS_URL"`

	// Worker de re-espejado local → remoto
	SyncIntervalSeconds int `mapstructure:"SYNC_INTERVAL_SECONDS"`
}

// RemotoConfigurado decide el modo híbrido: la sola presencia de la URL
// remota lo habilita.
func (c *Config) RemotoConfigurado() bool {
	return c.RemoteRedisURL != ""
}

// Load lee la configuración del entorno.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SQLITE_PATH", "data/inventario.db")
	viper.SetDefault("REMOTE_REDIS_URL", "")
	viper.SetDefault("SYNC_INTERVAL_SECONDS", 60)

	// .env opcional: no falla si no existe
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
