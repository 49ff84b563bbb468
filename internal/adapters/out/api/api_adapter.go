package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// envelope - стандартная обертка ответов бэкенда
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type ApiAdapter struct {
	client  *http.Client
	cfg     *config.Config
	baseURL string
	tokens  out.TokenStorePort
	logger  out.LoggerPort

	// Вызывается, когда бэкенд отверг уже предъявленный токен
	onUnauthorized func()
}

func NewApiAdapter(cfg *config.Config, tokens out.TokenStorePort, logger out.LoggerPort) *ApiAdapter {
	return &ApiAdapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		baseURL: cfg.Api.BaseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// OnUnauthorized регистрирует обработчик 401 для аутентифицированных вызовов
func (a *ApiAdapter) OnUnauthorized(hook func()) {
	a.onUnauthorized = hook
}

// request собирает JSON-запрос: базовый URL, заголовок обхода туннеля и
// bearer-токен, если он сохранен. Отсутствие токена не ошибка - защищенные
// эндпоинты отвергает бэкенд.
func (a *ApiAdapter) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return newNetworkError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return a.do(req, result)
}

func (a *ApiAdapter) do(req *http.Request, result interface{}) error {
	req.Header.Set(a.cfg.Api.TunnelBypassHeader, a.cfg.Api.TunnelBypassValue)

	token, err := a.tokens.Load()
	if err != nil {
		a.logger.Warn("api.token.load_failed", out.LogFields{
			"error": err.Error(),
		})
		token = ""
	}
	authed := token != ""
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("api.request.failed", out.LogFields{
			"method": req.Method,
			"path":   req.URL.Path,
			"error":  err.Error(),
		})
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newStatusError(resp.StatusCode, raw)
		a.logger.Error("api.request.rejected", out.LogFields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": resp.StatusCode,
			"kind":   string(apiErr.Kind),
		})

		// Валидный ранее токен отвергнут - сервер его отозвал
		if resp.StatusCode == http.StatusUnauthorized && authed && a.onUnauthorized != nil {
			a.onUnauthorized()
		}

		return apiErr
	}

	if result == nil {
		return nil
	}

	// Ответы приходят в обертке {status, message, data}, но часть
	// эндпоинтов отдает сущность без обертки
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("api: decode response data: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
