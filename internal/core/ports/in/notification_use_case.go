package in

import "context"

type NotificationUseCase interface {
	// Регистрация идентификатора push-устройства на бэкенде.
	// Односторонний вызов, кэш не трогает.
	RegisterDevice(ctx context.Context, playerID string) error
}
