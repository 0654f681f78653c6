package config

import (
	"log"
	"time"
)

// ClientConfig — конфигурация клиента (cmd/client).
type ClientConfig struct {
	Env     string        `yaml:"env" env-default:"local"`
	Locale  string        `yaml:"locale" env:"SHOP_LOCALE" env-default:"en"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Order   OrderConfig   `yaml:"order"`
	Tracing TracingConfig `yaml:"tracing"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"SHOP_API_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// SessionConfig: backend "file" (по умолчанию), "redis" или "memory".
type SessionConfig struct {
	Backend   string        `yaml:"backend" env-default:"file"`
	Path      string        `yaml:"path"`
	RedisAddr string        `yaml:"redis_addr" env:"SHOP_REDIS_ADDR" env-default:"localhost:6379"`
	KeyPrefix string        `yaml:"key_prefix" env-default:"secondhand:session:"`
	TTL       time.Duration `yaml:"ttl" env-default:"0s"`
}

// OrderConfig — значения по умолчанию для полей заказа, которые клиент пока не спрашивает.
type OrderConfig struct {
	DefaultShippingAddress string `yaml:"default_shipping_address" env-default:"默认地址"`
	DefaultContactPhone    string `yaml:"default_contact_phone" env-default:"13800138000"`
}

// MustLoadClient — как MustLoad, но для клиента.
func MustLoadClient() *ClientConfig {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadClientByPath(configPath)
}

func MustLoadClientByPath(configPath string) *ClientConfig {
	var cfg ClientConfig
	mustRead(configPath, &cfg)
	return &cfg
}
