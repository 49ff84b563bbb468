package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/services/query_service"
	"github.com/eveeze/ema-spa-website-sub000/internal/utils"
)

// AvailabilityService - выбор даты и наблюдение доступности сеансов.
// Ключ кэша включает дату: смена даты - это новая запись кэша, данные
// другой даты не переиспользуются. Короткое окно свежести и поллинг
// поднимают брони, сделанные другими клиентами параллельно.
type AvailabilityService struct {
	api    out.ApiPort
	store  *query_service.Store
	auth   *AuthService
	cfg    *config.Config
	logger out.LoggerPort

	mu          sync.Mutex
	watchedDate string
	current     *query_service.Subscription

	bookMutation *query_service.Mutation
}

func NewAvailabilityService(
	api out.ApiPort,
	store *query_service.Store,
	auth *AuthService,
	cfg *config.Config,
	logger out.LoggerPort,
) *AvailabilityService {
	s := &AvailabilityService{
		api:    api,
		store:  store,
		auth:   auth,
		cfg:    cfg,
		logger: logger.WithModule("AvailabilityService"),
	}

	// Бронирование инвалидирует доступность выбранной даты и список
	// бронирований до того, как результат вернется вызывающему
	s.bookMutation = store.NewMutation(
		"reservation.create",
		func(ctx context.Context, payload interface{}) (interface{}, error) {
			req := payload.(out.CreateReservationRequest)
			return s.api.CreateReservation(ctx, req)
		},
		func(ctx context.Context, result interface{}, payload interface{}) {
			keys := []string{query_service.KeyReservations}
			if date := s.WatchedDate(); date != "" {
				keys = append(keys, query_service.KeyAvailability(date))
			}
			s.store.Invalidate(ctx, keys...)
		},
	)

	return s
}

// SelectDate переключает наблюдаемую дату: закрывает прежнюю подписку
// и открывает новую под ключом этой даты
func (s *AvailabilityService) SelectDate(date string) (*query_service.Subscription, error) {
	if _, err := utils.ParseDay(date); err != nil {
		return nil, fmt.Errorf("availability: invalid date %q: %w", date, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
	}

	s.logger.Info("availability.date.selected", out.LogFields{
		"date": date,
	})

	sub := s.store.Subscribe(
		query_service.KeyAvailability(date),
		func(ctx context.Context) (interface{}, error) {
			return s.api.GetAvailableSlots(ctx, date)
		},
		query_service.Options{
			StaleAfter:   s.cfg.Availability.StaleAfter,
			PollInterval: s.cfg.Availability.PollInterval,
			Enabled:      s.auth.IsAuthenticated(),
		},
	)

	s.watchedDate = date
	s.current = sub
	return sub, nil
}

func (s *AvailabilityService) WatchedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchedDate
}

// Stop закрывает текущую подписку; поллинг даты останавливается
func (s *AvailabilityService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
		s.watchedDate = ""
	}
}

// Book создает бронирование выбранного сеанса
func (s *AvailabilityService) Book(ctx context.Context, req out.CreateReservationRequest) (*out.CreateReservationResult, error) {
	if !s.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	result, err := s.bookMutation.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	created := result.(*out.CreateReservationResult)
	s.logger.Info("availability.book.success", out.LogFields{
		"reservationId": created.Reservation.ID,
		"sessionId":     req.SessionID,
	})

	return created, nil
}

// Snapshot возвращает текущее состояние наблюдаемой даты
func (s *AvailabilityService) Snapshot() (query_service.Snapshot, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return query_service.Snapshot{}, ErrNoWatchedDate
	}
	return current.Snapshot(), nil
}

// Реализация in.CacheInvalidationUseCase: сброс кэша по событиям бэкенда

func (s *AvailabilityService) InvalidateAvailabilityDate(ctx context.Context, date string) error {
	if _, err := utils.ParseDay(date); err != nil {
		return fmt.Errorf("availability: invalid date %q: %w", date, err)
	}

	s.store.Invalidate(ctx, query_service.KeyAvailability(date))
	return nil
}

func (s *AvailabilityService) InvalidateReservations(ctx context.Context) error {
	s.store.Invalidate(ctx, query_service.KeyReservations)
	return nil
}

// OpenSessions возвращает свободные сеансы из последнего снимка
func OpenSessions(day *domain.TimeSlotDay) []domain.SpaSession {
	if day == nil {
		return nil
	}

	var open []domain.SpaSession
	for _, window := range day.Windows {
		for _, session := range window.Sessions {
			if !session.Booked {
				open = append(open, session)
			}
		}
	}
	return open
}
