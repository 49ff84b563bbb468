package query_service

import "github.com/google/uuid"

// Ключи кэша: имя ресурса плюс параметры запроса

const (
	KeyProfile        = "customer:profile"
	KeyReservations   = "reservations:customer"
	KeyPaymentMethods = "reservations:payment-methods"
	KeyNotifications  = "notifications"
)

func KeyReservation(reservationID uuid.UUID) string {
	return "reservations:customer:" + reservationID.String()
}

func KeyPayment(paymentID uuid.UUID) string {
	return "reservations:payment:" + paymentID.String()
}

func KeyAvailability(date string) string {
	return "time-slot:available:" + date
}

func KeyRatingSession(token string) string {
	return "ratings:session:" + token
}
