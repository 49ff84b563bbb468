package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	inhttp "github.com/eveeze/ema-spa-website-sub000/internal/adapters/in/http"
	"github.com/eveeze/ema-spa-website-sub000/internal/adapters/in/rabbitmq"
	"github.com/eveeze/ema-spa-website-sub000/internal/adapters/out/api"
	"github.com/eveeze/ema-spa-website-sub000/internal/adapters/out/logger"
	"github.com/eveeze/ema-spa-website-sub000/internal/adapters/out/storage"
	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
)

func main() {
	// .env нужен только для локальной разработки
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"apiBaseUrl":      cfg.Api.BaseURL,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация исходящих адаптеров
	tokenStore := storage.NewFileTokenStore(cfg, mainLogger.WithModule("TokenStore"))
	apiAdapter := api.NewApiAdapter(cfg, tokenStore, mainLogger.WithModule("ApiAdapter"))

	queryStore, err := query_service.NewStore(cfg, mainLogger.WithModule("QueryStore"))
	if err != nil {
		log.Error("app.query_store.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Инициализация сервисов
	authService := services.NewAuthService(apiAdapter, tokenStore, mainLogger)
	apiAdapter.OnUnauthorized(authService.ForceLogout)

	availabilityService := services.NewAvailabilityService(apiAdapter, queryStore, authService, cfg, mainLogger)
	notificationService := services.NewNotificationService(apiAdapter, queryStore, authService, cfg, mainLogger)

	// Восстановление сессии из сохраненного токена
	if err := authService.Bootstrap(context.Background()); err != nil {
		log.Error("app.auth.bootstrap_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Вебхуки push-подписок
	router := gin.Default()
	controller := inhttp.NewPushWebhookController(
		notificationService,
		cfg,
		mainLogger.WithModule("PushWebhookController"),
	)
	controller.RegisterRoutes(router)

	// Слушатель событий бэкенда только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewInvalidationListener(
			availabilityService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	availabilityService.Stop()
}
