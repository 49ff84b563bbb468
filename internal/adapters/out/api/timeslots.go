package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

// GetAvailableSlots возвращает проекцию доступности ровно на одну дату.
// Данные не авторитетны: двойное бронирование разрешает бэкенд.
func (a *ApiAdapter) GetAvailableSlots(ctx context.Context, date string) (*domain.TimeSlotDay, error) {
	path := fmt.Sprintf("/time-slot/available/%s", date)

	var day domain.TimeSlotDay
	if err := a.request(ctx, http.MethodGet, path, nil, &day); err != nil {
		a.logger.Error("api.timeslots.fetch_failed", out.LogFields{
			"date":  date,
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("api.timeslots.fetch_success", out.LogFields{
		"date":    date,
		"windows": len(day.Windows),
	})

	return &day, nil
}
