package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del relay.
// El UPSTREAM_URL por defecto es el tunel temporal que usaba el despliegue original.
type Config struct {
	HTTPPort           string        `env:"HTTP_PORT" envDefault:"3000"`
	UpstreamURL        string        `env:"UPSTREAM_URL" envDefault:"https://04fd-34-106-229-103.ngrok-free.app/predict"`
	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
