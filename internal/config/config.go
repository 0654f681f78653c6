package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — конфигурация эталонного API (cmd/server, cmd/migrator).
type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Broker     BrokerConfig     `yaml:"broker"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// JWTConfig настройка jwt, TokenTTL в минутах. Пустой секрет отвергает app.NewApp, мигратору он не нужен
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// BrokerConfig — RabbitMQ для событий о заказах. Пустой URL — события не публикуются.
type BrokerConfig struct {
	URL        string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string `yaml:"exchange" env-default:"order.events"`
	RoutingKey string `yaml:"routing_key" env-default:"order.created"`
}

// TracingConfig — экспорт спанов в Jaeger. Пустой endpoint — трассировка выключена.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" env:"JAEGER_ENDPOINT"`
	ServiceName string `yaml:"service_name" env-default:"secondhand-shop"`
}

// TTL — время жизни токена как Duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TokenTTL) * time.Minute
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	var cfg Config
	mustRead(configPath, &cfg)
	return &cfg
}

func mustRead(configPath string, cfg any) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}
}
