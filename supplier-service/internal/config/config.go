package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/weiawesome/supplyfinder/pkg/config"
	"github.com/weiawesome/supplyfinder/pkg/record"
)

type Config struct {
	Server   ServerConfig
	GRPC     GRPCConfig
	Registry RegistryConfig
	Log      LogConfig
}

// ServerConfig is the admin HTTP listener.
type ServerConfig struct {
	Host            string
	Port            int
	Enabled         bool
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type GRPCConfig struct {
	Host string
	Port int
}

// RegistryConfig lists the records loaded at startup.
type RegistryConfig struct {
	Seed []record.Record `mapstructure:"seed"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// DefaultSeed is the single row the lookup service starts with.
func DefaultSeed() []record.Record {
	return []record.Record{
		{ID: 1, URL: "localhost:10933", Name: "Kroger", Location: "Ann Arbor, MI"},
	}
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50051)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.enabled", "ADMIN_ENABLED")
	v.BindEnv("grpc.port", "GRPC_PORT")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if !v.IsSet("registry.seed") {
		cfg.Registry.Seed = DefaultSeed()
	}
	for _, rec := range cfg.Registry.Seed {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid registry seed: %w", err)
		}
	}

	return &cfg, nil
}
