package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/in"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// PushWebhookController принимает события смены push-подписки от внешнего
// SDK уведомлений и пересылает идентификатор устройства на бэкенд
type PushWebhookController struct {
	useCase in.NotificationUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewPushWebhookController(useCase in.NotificationUseCase, cfg *config.Config, logger out.LoggerPort) *PushWebhookController {
	return &PushWebhookController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *PushWebhookController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	webhooks := router.Group("/webhooks")
	webhooks.Use(c.basicAuth())
	{
		webhooks.POST("/push/subscription", c.subscriptionChanged)
	}
}

type SubscriptionChangedRequest struct {
	AppID      string `json:"appId"`
	PlayerID   string `json:"playerId" binding:"required"`
	Subscribed bool   `json:"subscribed"`
}

func (c *PushWebhookController) subscriptionChanged(ctx *gin.Context) {
	var req SubscriptionChangedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AppID != "" && req.AppID != c.cfg.Push.AppID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown application id"})
		return
	}

	c.logger.Info("push.subscription.changed", out.LogFields{
		"playerId":   req.PlayerID,
		"subscribed": req.Subscribed,
	})

	if err := c.useCase.RegisterDevice(ctx.Request.Context(), req.PlayerID); err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"playerId": req.PlayerID})
}

func (c *PushWebhookController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *PushWebhookController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
			passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
			if usernameMatch && passwordMatch {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
