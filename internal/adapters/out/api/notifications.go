package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

func (a *ApiAdapter) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := a.request(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		a.logger.Error("api.notifications.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return notifications, nil
}

func (a *ApiAdapter) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	path := fmt.Sprintf("/notifications/%s/read", notificationID)

	var notification domain.Notification
	if err := a.request(ctx, http.MethodPatch, path, nil, &notification); err != nil {
		a.logger.Error("api.notification.mark_read_failed", out.LogFields{
			"notificationId": notificationID,
			"error":          err.Error(),
		})
		return nil, err
	}

	return &notification, nil
}
