package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Server Server
}

type Server struct {
	Port         string `envconfig:"PORT" default:"8080"`
	CORSOrigin   string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	StatePath    string `envconfig:"STATE_PATH"` // empty keeps the collection in memory
	SyncPassword string `envconfig:"SYNC_PASSWORD" required:"true"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
