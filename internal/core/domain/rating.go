package domain

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	Score         int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RatingSession - одноразовая ссылка на оценку завершенного сеанса,
// бэкенд выдает токен и рассылает его клиенту
type RatingSession struct {
	Token         string       `json:"token"`
	Reservation   *Reservation `json:"reservation"`
	Expired       bool         `json:"isExpired"`
	AlreadyClosed bool         `json:"isUsed"`
}
