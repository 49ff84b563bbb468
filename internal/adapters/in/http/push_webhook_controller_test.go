package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l nopLogger) WithModule(module string) out.LoggerPort {
	return l
}

type fakeNotificationUseCase struct {
	playerID string
	err      error
}

func (f *fakeNotificationUseCase) RegisterDevice(ctx context.Context, playerID string) error {
	f.playerID = playerID
	return f.err
}

func newTestRouter(useCase *fakeNotificationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.Push.AppID = "app-id"
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "webhooks", Password: "secret"},
	}

	router := gin.New()
	controller := NewPushWebhookController(useCase, cfg, nopLogger{})
	controller.RegisterRoutes(router)
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeNotificationUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSubscriptionWebhookRequiresBasicAuth(t *testing.T) {
	router := newTestRouter(&fakeNotificationUseCase{})

	body := `{"appId":"app-id","playerId":"player-1","subscribed":true}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(body))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(body))
	req.SetBasicAuth("webhooks", "wrong")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong password, got %d", w.Code)
	}
}

func TestSubscriptionWebhookRegistersDevice(t *testing.T) {
	useCase := &fakeNotificationUseCase{}
	router := newTestRouter(useCase)

	body := `{"appId":"app-id","playerId":"player-1","subscribed":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(body))
	req.SetBasicAuth("webhooks", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if useCase.playerID != "player-1" {
		t.Fatalf("expected player id forwarded, got %q", useCase.playerID)
	}
}

func TestSubscriptionWebhookRejectsUnknownApp(t *testing.T) {
	useCase := &fakeNotificationUseCase{}
	router := newTestRouter(useCase)

	body := `{"appId":"other-app","playerId":"player-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(body))
	req.SetBasicAuth("webhooks", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown app id, got %d", w.Code)
	}
	if useCase.playerID != "" {
		t.Fatalf("expected no registration, got %q", useCase.playerID)
	}
}

func TestSubscriptionWebhookRequiresPlayerID(t *testing.T) {
	router := newTestRouter(&fakeNotificationUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(`{"appId":"app-id"}`))
	req.SetBasicAuth("webhooks", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without player id, got %d", w.Code)
	}
}

func TestSubscriptionWebhookReportsUpstreamFailure(t *testing.T) {
	useCase := &fakeNotificationUseCase{err: errors.New("backend down")}
	router := newTestRouter(useCase)

	body := `{"appId":"app-id","playerId":"player-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/push/subscription", strings.NewReader(body))
	req.SetBasicAuth("webhooks", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on upstream failure, got %d", w.Code)
	}
}
