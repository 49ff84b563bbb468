package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l nopLogger) WithModule(module string) out.LoggerPort {
	return l
}

// memTokenStore - токен в памяти вместо файла
type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// fakeApi реализует out.ApiPort; тесты подменяют только нужные методы
type fakeApi struct {
	loginFn              func(ctx context.Context, req out.LoginRequest) (*out.AuthResult, error)
	verifyOtpFn          func(ctx context.Context, req out.VerifyOtpRequest) (*out.AuthResult, error)
	getProfileFn         func(ctx context.Context) (*domain.Customer, error)
	getReservationsFn    func(ctx context.Context) ([]domain.Reservation, error)
	createReservationFn  func(ctx context.Context, req out.CreateReservationRequest) (*out.CreateReservationResult, error)
	getAvailableSlotsFn  func(ctx context.Context, date string) (*domain.TimeSlotDay, error)
	updatePlayerIDFn     func(ctx context.Context, playerID string) error
	markReadFn           func(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	getNotificationsFn   func(ctx context.Context) ([]domain.Notification, error)
	createRatingFn       func(ctx context.Context, req out.CreateRatingRequest) (*domain.Rating, error)
	uploadPaymentProofFn func(ctx context.Context, paymentID uuid.UUID, filename string, proof io.Reader) (*domain.Payment, error)
}

var errFakeNotImplemented = errors.New("fake api: not implemented")

func (f *fakeApi) Register(ctx context.Context, req out.RegisterRequest) (*domain.Customer, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) VerifyOtp(ctx context.Context, req out.VerifyOtpRequest) (*out.AuthResult, error) {
	if f.verifyOtpFn != nil {
		return f.verifyOtpFn(ctx, req)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) ResendOtp(ctx context.Context, req out.ResendOtpRequest) error {
	return nil
}

func (f *fakeApi) Login(ctx context.Context, req out.LoginRequest) (*out.AuthResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, req)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) GetProfile(ctx context.Context) (*domain.Customer, error) {
	if f.getProfileFn != nil {
		return f.getProfileFn(ctx)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) UpdateProfile(ctx context.Context, customerID uuid.UUID, req out.UpdateProfileRequest) (*domain.Customer, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) UpdatePlayerID(ctx context.Context, playerID string) error {
	if f.updatePlayerIDFn != nil {
		return f.updatePlayerIDFn(ctx, playerID)
	}
	return nil
}

func (f *fakeApi) GetReservations(ctx context.Context) ([]domain.Reservation, error) {
	if f.getReservationsFn != nil {
		return f.getReservationsFn(ctx)
	}
	return nil, nil
}

func (f *fakeApi) GetReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) CreateReservation(ctx context.Context, req out.CreateReservationRequest) (*out.CreateReservationResult, error) {
	if f.createReservationFn != nil {
		return f.createReservationFn(ctx, req)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) GetPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return nil, nil
}

func (f *fakeApi) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) UploadPaymentProof(ctx context.Context, paymentID uuid.UUID, filename string, proof io.Reader) (*domain.Payment, error) {
	if f.uploadPaymentProofFn != nil {
		return f.uploadPaymentProofFn(ctx, paymentID, filename, proof)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) GetAvailableSlots(ctx context.Context, date string) (*domain.TimeSlotDay, error) {
	if f.getAvailableSlotsFn != nil {
		return f.getAvailableSlotsFn(ctx, date)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) CreateRating(ctx context.Context, req out.CreateRatingRequest) (*domain.Rating, error) {
	if f.createRatingFn != nil {
		return f.createRatingFn(ctx, req)
	}
	return nil, errFakeNotImplemented
}

func (f *fakeApi) GetRatingSession(ctx context.Context, token string) (*domain.RatingSession, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) CreateManualRating(ctx context.Context, req out.ManualRatingRequest) (*domain.Rating, error) {
	return nil, errFakeNotImplemented
}

func (f *fakeApi) GetNotifications(ctx context.Context) ([]domain.Notification, error) {
	if f.getNotificationsFn != nil {
		return f.getNotificationsFn(ctx)
	}
	return nil, nil
}

func (f *fakeApi) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, notificationID)
	}
	return nil, errFakeNotImplemented
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.DetachedSize = 16
	cfg.Availability.StaleAfter = 0
	cfg.Availability.PollInterval = 0
	cfg.Notifications.StaleAfter = 0
	cfg.Notifications.PollInterval = 0
	return cfg
}

func newTestQueryStore(t *testing.T) *query_service.Store {
	t.Helper()

	store, err := query_service.NewStore(newTestConfig(), nopLogger{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

// authenticatedService выполняет вход через фейковый бэкенд
func authenticatedService(t *testing.T, api *fakeApi) *AuthService {
	t.Helper()

	customer := domain.Customer{ID: uuid.New(), Name: "Sari", Phone: "+628111111111"}
	api.loginFn = func(ctx context.Context, req out.LoginRequest) (*out.AuthResult, error) {
		return &out.AuthResult{Token: "session-token", Customer: customer}, nil
	}

	auth := NewAuthService(api, &memTokenStore{}, nopLogger{})
	if _, err := auth.Login(context.Background(), out.LoginRequest{Phone: customer.Phone, Password: "secret"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return auth
}
