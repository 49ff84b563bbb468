package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Asia/Jakarta"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Api struct {
		BaseURL string `env:"API_BASE_URL"`
		// Заголовок для обхода dev-туннеля перед бэкендом
		TunnelBypassHeader string `env:"API_TUNNEL_BYPASS_HEADER" envDefault:"ngrok-skip-browser-warning"`
		TunnelBypassValue  string `env:"API_TUNNEL_BYPASS_VALUE" envDefault:"true"`
	}

	Auth struct {
		TokenFile          string `env:"AUTH_TOKEN_FILE" envDefault:".ema/session-token"`
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"ema_webhooks:ema_webhooks"`
		BasicClients       []ConfigBasicClient
	}

	Cache struct {
		// Размер LRU для записей без подписчиков
		DetachedSize int `env:"CACHE_DETACHED_SIZE" envDefault:"256"`
	}

	Availability struct {
		StaleAfter   time.Duration `env:"AVAILABILITY_STALE_AFTER" envDefault:"1m"`
		PollInterval time.Duration `env:"AVAILABILITY_POLL_INTERVAL" envDefault:"5m"`
	}

	Notifications struct {
		StaleAfter   time.Duration `env:"NOTIFICATIONS_STALE_AFTER" envDefault:"30s"`
		PollInterval time.Duration `env:"NOTIFICATIONS_POLL_INTERVAL" envDefault:"1m"`
	}

	Push struct {
		AppID string `env:"PUSH_APP_ID"`
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		QueueConfig struct {
			ReservationQueueName     string `env:"RABBITMQ_RESERVATION_QUEUE" envDefault:"ema.client.reservation"`
			ReservationQueueBind     string `env:"RABBITMQ_RESERVATION_BIND" envDefault:"backend.ema-client.reservation.*"`
			ReservationQueueExchange string `env:"RABBITMQ_RESERVATION_EXCHANGE" envDefault:"ema.events"`
			TimeSlotQueueName        string `env:"RABBITMQ_TIMESLOT_QUEUE" envDefault:"ema.client.timeslot"`
			TimeSlotQueueBind        string `env:"RABBITMQ_TIMESLOT_BIND" envDefault:"backend.ema-client.timeslot.*"`
			TimeSlotQueueExchange    string `env:"RABBITMQ_TIMESLOT_EXCHANGE" envDefault:"ema.events"`
		}
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разделение клиентов вебхуков
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
