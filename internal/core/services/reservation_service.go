package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
)

const (
	reservationsStaleAfter   = 30 * time.Second
	paymentStaleAfter        = 15 * time.Second
	paymentMethodsStaleAfter = 10 * time.Minute

	// Статус оплаты меняется на сервере после проверки администратором
	paymentPollInterval = 30 * time.Second
)

type ProofUpload struct {
	PaymentID     uuid.UUID
	ReservationID uuid.UUID
	Filename      string
	Proof         io.Reader
}

type ReservationService struct {
	api    out.ApiPort
	store  *query_service.Store
	auth   *AuthService
	logger out.LoggerPort

	proofMutation *query_service.Mutation
}

func NewReservationService(
	api out.ApiPort,
	store *query_service.Store,
	auth *AuthService,
	logger out.LoggerPort,
) *ReservationService {
	s := &ReservationService{
		api:    api,
		store:  store,
		auth:   auth,
		logger: logger.WithModule("ReservationService"),
	}

	// Ответ на загрузку подтверждения уже содержит обновленную оплату:
	// пишем ее в кэш напрямую, без лишнего перезапроса
	s.proofMutation = store.NewMutation(
		"payment.upload_proof",
		func(ctx context.Context, payload interface{}) (interface{}, error) {
			upload := payload.(ProofUpload)
			return s.api.UploadPaymentProof(ctx, upload.PaymentID, upload.Filename, upload.Proof)
		},
		func(ctx context.Context, result interface{}, payload interface{}) {
			upload := payload.(ProofUpload)
			payment := result.(*domain.Payment)

			s.store.SetData(query_service.KeyPayment(upload.PaymentID), payment)
			s.store.Invalidate(ctx,
				query_service.KeyReservation(upload.ReservationID),
				query_service.KeyReservations,
			)
		},
	)

	return s
}

func (s *ReservationService) WatchReservations() *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyReservations,
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetReservations(ctx)
		},
		query_service.Options{
			StaleAfter: reservationsStaleAfter,
			Enabled:    s.auth.IsAuthenticated(),
		},
	)
}

func (s *ReservationService) WatchReservation(reservationID uuid.UUID) *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyReservation(reservationID),
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetReservation(ctx, reservationID)
		},
		query_service.Options{
			StaleAfter: reservationsStaleAfter,
			Enabled:    s.auth.IsAuthenticated(),
		},
	)
}

func (s *ReservationService) WatchPaymentMethods() *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyPaymentMethods,
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetPaymentMethods(ctx)
		},
		query_service.Options{
			StaleAfter: paymentMethodsStaleAfter,
			Enabled:    s.auth.IsAuthenticated(),
		},
	)
}

func (s *ReservationService) WatchPayment(paymentID uuid.UUID) *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyPayment(paymentID),
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetPayment(ctx, paymentID)
		},
		query_service.Options{
			StaleAfter:   paymentStaleAfter,
			PollInterval: paymentPollInterval,
			Enabled:      s.auth.IsAuthenticated(),
		},
	)
}

// UploadPaymentProof загружает подтверждение перевода для оплаты
func (s *ReservationService) UploadPaymentProof(ctx context.Context, upload ProofUpload) (*domain.Payment, error) {
	if !s.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	result, err := s.proofMutation.Execute(ctx, upload)
	if err != nil {
		return nil, err
	}

	payment := result.(*domain.Payment)
	s.logger.Info("reservation.proof.uploaded", out.LogFields{
		"paymentId": upload.PaymentID,
		"status":    payment.Status,
	})

	return payment, nil
}
