package services

import (
	"context"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
)

type RatingService struct {
	api    out.ApiPort
	store  *query_service.Store
	auth   *AuthService
	logger out.LoggerPort

	createMutation *query_service.Mutation
	manualMutation *query_service.Mutation
}

func NewRatingService(
	api out.ApiPort,
	store *query_service.Store,
	auth *AuthService,
	logger out.LoggerPort,
) *RatingService {
	s := &RatingService{
		api:    api,
		store:  store,
		auth:   auth,
		logger: logger.WithModule("RatingService"),
	}

	// Оценка меняет флаг isRated у бронирования: сбрасываем его
	// деталь и список
	s.createMutation = store.NewMutation(
		"rating.create",
		func(ctx context.Context, payload interface{}) (interface{}, error) {
			req := payload.(out.CreateRatingRequest)
			return s.api.CreateRating(ctx, req)
		},
		func(ctx context.Context, result interface{}, payload interface{}) {
			req := payload.(out.CreateRatingRequest)
			s.store.Invalidate(ctx,
				query_service.KeyReservation(req.ReservationID),
				query_service.KeyReservations,
			)
		},
	)

	s.manualMutation = store.NewMutation(
		"rating.manual_create",
		func(ctx context.Context, payload interface{}) (interface{}, error) {
			req := payload.(out.ManualRatingRequest)
			return s.api.CreateManualRating(ctx, req)
		},
		func(ctx context.Context, result interface{}, payload interface{}) {
			req := payload.(out.ManualRatingRequest)
			s.store.Invalidate(ctx, query_service.KeyRatingSession(req.Token))
		},
	)

	return s
}

func (s *RatingService) CreateRating(ctx context.Context, req out.CreateRatingRequest) (*domain.Rating, error) {
	if !s.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	result, err := s.createMutation.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	return result.(*domain.Rating), nil
}

// WatchRatingSession - просмотр одноразовой сессии оценки по токену
// из рассылки; эндпоинт не требует аутентификации
func (s *RatingService) WatchRatingSession(token string) *query_service.Subscription {
	return s.store.Subscribe(
		query_service.KeyRatingSession(token),
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetRatingSession(ctx, token)
		},
		query_service.DefaultOptions(),
	)
}

func (s *RatingService) CreateManualRating(ctx context.Context, req out.ManualRatingRequest) (*domain.Rating, error) {
	result, err := s.manualMutation.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	return result.(*domain.Rating), nil
}
