package domain

import (
	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/json_types"
)

// SpaSession - один бронируемый сеанс внутри временного окна.
// Флаг Booked приходит от бэкенда и не является источником истины:
// конфликты бронирования разрешаются на стороне сервера.
type SpaSession struct {
	ID        uuid.UUID `json:"id"`
	StaffName string    `json:"staffName"`
	Booked    bool      `json:"isBooked"`
}

type TimeWindow struct {
	ID        uuid.UUID        `json:"id"`
	StartTime json_types.Clock `json:"startTime"`
	EndTime   json_types.Clock `json:"endTime"`
	Sessions  []SpaSession     `json:"sessions"`
}

// TimeSlotDay - проекция доступности на одну календарную дату
type TimeSlotDay struct {
	Date    json_types.Date `json:"date"`
	Windows []TimeWindow    `json:"timeSlots"`
}

// OpenSessionCount возвращает количество свободных сеансов за день
func (d TimeSlotDay) OpenSessionCount() int {
	count := 0
	for _, window := range d.Windows {
		for _, session := range window.Sessions {
			if !session.Booked {
				count++
			}
		}
	}
	return count
}
