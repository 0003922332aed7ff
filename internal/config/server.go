package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// DeviceAPIKey is the shared secret scanning devices present in the
	// X-API-Key header. AdminAPIKey guards the admin surface; when empty
	// the admin routes are open (local development).
	DeviceAPIKey string `env:"DEVICE_API_KEY,required,notEmpty"`
	AdminAPIKey  string `env:"ADMIN_API_KEY"`

	// ScreenName is the screen session the game server console runs in.
	ScreenName string `env:"MINECRAFT_SCREEN_NAME" envDefault:"minecraft_server"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
