package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	PostgresDB PostgresDB `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	Sessions   Sessions   `yaml:"rdb"`
	Images     Images     `yaml:"images"`
}

type Server struct {
	Addr           string        `env-default:":8080"  yaml:"addr"`
	BaseURL        string        `yaml:"baseURL"`
	ReadTimeout    time.Duration `env-default:"5s"     yaml:"readTimeout"`
	IdleTimeout    time.Duration `env-default:"30s"    yaml:"idleTimeout"`
	WriteTimeout   time.Duration `env-default:"10s"    yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

type Logger struct {
	Level     string   `env-default:"info" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

type PostgresDB struct {
	Addr     string `yaml:"addr"`
	Username string `env:"POSTGRES_USER"     env-required:"true" yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DB       string `env:"POSTGRES_DB"       env-required:"true" yaml:"db"`
	SSLmode  string `env-default:"disable"   yaml:"sslmode"`
	MaxConns string `env-default:"10"        yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
}

// DSN is the plain connection string used for migrations.
func (p PostgresDB) DSN() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" +
		p.Addr + "/" + p.DB + "?" + "sslmode=" + p.SSLmode
}

// ConnString is DSN plus the pgxpool options.
func (p PostgresDB) ConnString() string {
	return p.DSN() + "&pool_max_conns=" + p.MaxConns
}

type Auth struct {
	TTL    time.Duration `env-default:"24h" yaml:"ttl"`
	Secret string        `env:"SECRET" env-required:"true" yaml:"secret"`
}

type Sessions struct {
	Addr     string `yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `yaml:"db"`
}

type Images struct {
	Dir       string `env-default:"./media"  yaml:"dir"`
	URLPrefix string `env-default:"/media/"  yaml:"urlPrefix"`
	MaxSize   int64  `env-default:"10485760" yaml:"maxSize"`
	MaxPixels int64  `env-default:"40000000" yaml:"maxPixels"`
}

func New(configPath string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	return cfg, nil
}
