package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Store    StoreConfig    `envPrefix:"STORE_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Chat     ChatConfig     `envPrefix:"CHAT_"`
	LLM      LLMConfig      `envPrefix:"LLM_"`
	Mail     MailConfig     `envPrefix:"MAIL_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type StoreConfig struct {
	// Driver selects the storage backend once at startup: "memory" for the
	// self-contained dev dataset, "mongo" for the live database.
	Driver string `env:"DRIVER" envDefault:"memory"`
}

type DatabaseConfig struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"engage"`
}

type RedisConfig struct {
	// Addr switches the chat rate limiter to shared counters in redis.
	// Empty keeps the process-local limiter.
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
}

type ChatConfig struct {
	RateLimit     int `env:"RATE_LIMIT" envDefault:"10"`
	RateWindowSec int `env:"RATE_WINDOW_SEC" envDefault:"60"`
}

type LLMConfig struct {
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY"`
	Model          string `env:"MODEL" envDefault:"googleai/gemini-2.0-flash"`
}

type MailConfig struct {
	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	Username  string `env:"USERNAME"`
	Password  string `env:"PASSWORD"`
	From      string `env:"FROM" envDefault:"no-reply@trooper-recruit.example"`
	AdminAddr string `env:"ADMIN_ADDR" envDefault:"recruiting@trooper-recruit.example"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"engagement-events"`
	GroupID string   `env:"GROUP_ID" envDefault:"engage-api"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == "mongo" && cfg.Database.URI == "" {
		return nil, fmt.Errorf("STORE_DRIVER=mongo requires DATABASE_URI")
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
