package in

import "context"

// CacheInvalidationUseCase - инвалидация кэша по событиям бэкенда
type CacheInvalidationUseCase interface {
	// Сброс кэша доступности для одной даты
	InvalidateAvailabilityDate(ctx context.Context, date string) error

	// Сброс кэша списка бронирований клиента
	InvalidateReservations(ctx context.Context) error
}
