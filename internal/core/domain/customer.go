package domain

import "github.com/google/uuid"

type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phoneNumber"`
	// Идентификатор устройства для push-уведомлений
	PlayerID string `json:"playerId,omitempty"`
}
