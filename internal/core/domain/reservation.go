package domain

import (
	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/json_types"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
)

type Reservation struct {
	ID          uuid.UUID         `json:"id"`
	CustomerID  uuid.UUID         `json:"customerId"`
	SessionID   uuid.UUID         `json:"sessionId"`
	ServiceName string            `json:"serviceName"`
	BabyName    string            `json:"babyName"`
	BabyAge     int               `json:"babyAge"`
	StaffName   string            `json:"staffName"`
	Date        json_types.Date   `json:"sessionDate"`
	StartTime   json_types.Clock  `json:"startTime"`
	EndTime     json_types.Clock  `json:"endTime"`
	Status      ReservationStatus `json:"status"`
	TotalPrice  int               `json:"totalPrice"`
	Payment     *Payment          `json:"payment,omitempty"`
	Rated       bool              `json:"isRated"`
}
