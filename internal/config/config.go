package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Mongo struct {
	URI      string        `yaml:"MONGO_URI" env:"MONGO_URI" env-required:"true"`
	Database string        `yaml:"MONGO_DATABASE" env:"MONGO_DATABASE" env-default:"modish"`
	Timeout  time.Duration `yaml:"MONGO_TIMEOUT" env:"MONGO_TIMEOUT" env-default:"10s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type Cache struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Mongo        Mongo        `yaml:"mongo"`
	RedisConnect RedisConnect `yaml:"redis"`
	Security     Security     `yaml:"security"`
	Cache        Cache        `yaml:"cache"`
}

// LoadConfigFromPath reads and validates the config file at path, letting
// environment variables override file values.
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH, the -config flag, or
// ./config/local.yaml, then loads it. Any failure is fatal at startup.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %s", err.Error())
	}

	return cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
