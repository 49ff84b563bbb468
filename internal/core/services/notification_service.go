package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
)

type NotificationService struct {
	api    out.ApiPort
	store  *query_service.Store
	auth   *AuthService
	cfg    *config.Config
	logger out.LoggerPort

	markReadMutation *query_service.Mutation
}

func NewNotificationService(
	api out.ApiPort,
	store *query_service.Store,
	auth *AuthService,
	cfg *config.Config,
	logger out.LoggerPort,
) *NotificationService {
	s := &NotificationService{
		api:    api,
		store:  store,
		auth:   auth,
		cfg:    cfg,
		logger: logger.WithModule("NotificationService"),
	}

	// Ответ содержит прочитанное уведомление: обновляем список в кэше
	// на месте, без перезапроса
	s.markReadMutation = store.NewMutation(
		"notification.mark_read",
		func(ctx context.Context, payload interface{}) (interface{}, error) {
			notificationID := payload.(uuid.UUID)
			return s.api.MarkNotificationRead(ctx, notificationID)
		},
		func(ctx context.Context, result interface{}, payload interface{}) {
			updated := result.(*domain.Notification)

			cached, exists := s.store.Peek(query_service.KeyNotifications)
			if !exists {
				return
			}
			list, ok := cached.([]domain.Notification)
			if !ok {
				s.store.Invalidate(ctx, query_service.KeyNotifications)
				return
			}

			next := make([]domain.Notification, len(list))
			copy(next, list)
			for i := range next {
				if next[i].ID == updated.ID {
					next[i] = *updated
					break
				}
			}
			s.store.SetData(query_service.KeyNotifications, next)
		},
	)

	return s
}

func (s *NotificationService) WatchNotifications() *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyNotifications,
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetNotifications(ctx)
		},
		query_service.Options{
			StaleAfter:   s.cfg.Notifications.StaleAfter,
			PollInterval: s.cfg.Notifications.PollInterval,
			Enabled:      s.auth.IsAuthenticated(),
		},
	)
}

// WatchUnreadCount - та же запись кэша с проекцией в число непрочитанных
func (s *NotificationService) WatchUnreadCount() *query_service.Subscription {
	opts := query_service.Options{
		StaleAfter:   s.cfg.Notifications.StaleAfter,
		PollInterval: s.cfg.Notifications.PollInterval,
		Enabled:      s.auth.IsAuthenticated(),
		Select: func(raw interface{}) interface{} {
			list, ok := raw.([]domain.Notification)
			if !ok {
				return 0
			}
			count := 0
			for _, n := range list {
				if !n.IsRead() {
					count++
				}
			}
			return count
		},
	}

	return s.store.Subscribe(
		query_service.KeyNotifications,
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetNotifications(ctx)
		},
		opts,
	)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	if !s.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	result, err := s.markReadMutation.Execute(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	return result.(*domain.Notification), nil
}

// RegisterDevice пересылает идентификатор push-устройства на бэкенд.
// Односторонний вызов: кэш профиля намеренно не инвалидируется.
func (s *NotificationService) RegisterDevice(ctx context.Context, playerID string) error {
	if playerID == "" {
		return nil
	}

	if err := s.api.UpdatePlayerID(ctx, playerID); err != nil {
		s.logger.Error("notification.register_device.failed", out.LogFields{
			"playerId": playerID,
			"error":    err.Error(),
		})
		return err
	}

	s.logger.Info("notification.register_device.success", out.LogFields{
		"playerId": playerID,
	})
	return nil
}
