package out

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phoneNumber"`
	Code  string `json:"otp"`
}

type ResendOtpRequest struct {
	Phone string `json:"phoneNumber"`
}

type LoginRequest struct {
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}

// AuthResult - ответ бэкенда на login и verify-otp: токен плюс профиль
type AuthResult struct {
	Token    string          `json:"token"`
	Customer domain.Customer `json:"customer"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type CreateReservationRequest struct {
	SessionID       uuid.UUID `json:"sessionId"`
	BabyName        string    `json:"babyName"`
	BabyAge         int       `json:"babyAge"`
	ParentNames     string    `json:"parentNames,omitempty"`
	PaymentMethodID uuid.UUID `json:"paymentMethodId"`
	Notes           string    `json:"notes,omitempty"`
}

type CreateReservationResult struct {
	Reservation domain.Reservation `json:"reservation"`
	Payment     domain.Payment     `json:"payment"`
}

type CreateRatingRequest struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Score         int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
}

type ManualRatingRequest struct {
	Token   string `json:"token"`
	Score   int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type ApiPort interface {
	// Методы регистрации и аутентификации
	Register(ctx context.Context, req RegisterRequest) (*domain.Customer, error)
	VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*AuthResult, error)
	ResendOtp(ctx context.Context, req ResendOtpRequest) error
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)

	// Методы для работы с профилем
	GetProfile(ctx context.Context) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*domain.Customer, error)
	UpdatePlayerID(ctx context.Context, playerID string) error

	// Методы для работы с бронированиями и оплатой
	GetReservations(ctx context.Context) ([]domain.Reservation, error)
	GetReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResult, error)
	GetPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	UploadPaymentProof(ctx context.Context, paymentID uuid.UUID, filename string, proof io.Reader) (*domain.Payment, error)

	// Методы для работы с расписанием
	GetAvailableSlots(ctx context.Context, date string) (*domain.TimeSlotDay, error)

	// Методы для работы с оценками
	CreateRating(ctx context.Context, req CreateRatingRequest) (*domain.Rating, error)
	GetRatingSession(ctx context.Context, token string) (*domain.RatingSession, error)
	CreateManualRating(ctx context.Context, req ManualRatingRequest) (*domain.Rating, error)

	// Методы для работы с уведомлениями
	GetNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
}
