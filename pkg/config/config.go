package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	JWTSecret        string `env:"JWT_SECRET"`
	MockMailer       bool   `env:"MOCK_MAILER" envDefault:"true"`
	Mailer           Mailer
	Kafka            Kafka
}

type Mailer struct {
	Host     string `env:"MAILER_HOST"`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME" envDefault:"Invoicing"`
}

type Kafka struct {
	Brokers              []string `env:"KAFKA_BROKERS"`
	ConsumerID           string   `env:"KAFKA_CONSUMER_ID"`
	InvoicesChangedTopic string   `env:"KAFKA_INVOICES_CHANGED_TOPIC" envDefault:"invoices.changed"`
	ClientsChangedTopic  string   `env:"KAFKA_CLIENTS_CHANGED_TOPIC" envDefault:"clients.changed"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
