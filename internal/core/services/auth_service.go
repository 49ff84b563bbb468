package services

import (
	"context"
	"sync"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type AuthState string

const (
	AuthStateUninitialized   AuthState = "uninitialized"
	AuthStateValidating      AuthState = "validating"
	AuthStateAuthenticated   AuthState = "authenticated"
	AuthStateUnauthenticated AuthState = "unauthenticated"
)

// AuthService - процессное состояние аутентифицированной личности.
// Инвариант: authenticated тогда и только тогда, когда токен есть И
// последняя валидация профиля по нему прошла успешно. Токен, не прошедший
// валидацию, вычищается вместе со всем производным состоянием.
type AuthService struct {
	api    out.ApiPort
	tokens out.TokenStorePort
	logger out.LoggerPort

	mu       sync.RWMutex
	state    AuthState
	token    string
	customer *domain.Customer

	// Токен, уже прошедший валидацию - повторно не проверяем
	lastValidated string

	listeners []func(AuthState)
}

func NewAuthService(api out.ApiPort, tokens out.TokenStorePort, logger out.LoggerPort) *AuthService {
	return &AuthService{
		api:    api,
		tokens: tokens,
		logger: logger.WithModule("AuthService"),
		state:  AuthStateUninitialized,
	}
}

func (s *AuthService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *AuthService) IsAuthenticated() bool {
	return s.State() == AuthStateAuthenticated
}

// Ready сообщает, завершилась ли начальная валидация. Пока false,
// зависимые запросы должны оставаться выключенными.
func (s *AuthService) Ready() bool {
	state := s.State()
	return state == AuthStateAuthenticated || state == AuthStateUnauthenticated
}

func (s *AuthService) Customer() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer
}

func (s *AuthService) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// OnStateChange регистрирует слушателя переходов состояния.
// Слушатели UI реагируют на unauthenticated редиректом на вход.
func (s *AuthService) OnStateChange(fn func(AuthState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Bootstrap выполняется один раз на старте: поднимает сохраненный токен
// и валидирует его запросом профиля. Валидация выполняется не больше
// одного раза на значение токена.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.state != AuthStateUninitialized {
		s.mu.Unlock()
		return nil
	}

	token, err := s.tokens.Load()
	if err != nil || token == "" {
		s.state = AuthStateUnauthenticated
		s.mu.Unlock()
		s.notify(AuthStateUnauthenticated)
		s.logger.Info("auth.bootstrap.no_token", out.LogFields{})
		return nil
	}

	s.token = token
	s.state = AuthStateValidating
	s.mu.Unlock()

	s.logger.Info("auth.bootstrap.validating", out.LogFields{})

	customer, err := s.api.GetProfile(ctx)

	s.mu.Lock()
	if err != nil {
		// Протухший или отозванный токен вычищаем вместе с состоянием
		s.token = ""
		s.customer = nil
		s.state = AuthStateUnauthenticated
		s.mu.Unlock()

		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("auth.bootstrap.clear_failed", out.LogFields{
				"error": clearErr.Error(),
			})
		}
		s.notify(AuthStateUnauthenticated)
		s.logger.Warn("auth.bootstrap.validation_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil
	}

	s.customer = customer
	s.lastValidated = token
	s.state = AuthStateAuthenticated
	s.mu.Unlock()

	s.notify(AuthStateAuthenticated)
	s.logger.Info("auth.bootstrap.authenticated", out.LogFields{
		"customerId": customer.ID,
	})
	return nil
}

func (s *AuthService) Register(ctx context.Context, req out.RegisterRequest) (*domain.Customer, error) {
	return s.api.Register(ctx, req)
}

func (s *AuthService) ResendOtp(ctx context.Context, req out.ResendOtpRequest) error {
	return s.api.ResendOtp(ctx, req)
}

// VerifyOtp активирует аккаунт и сразу выполняет вход
func (s *AuthService) VerifyOtp(ctx context.Context, req out.VerifyOtpRequest) (*domain.Customer, error) {
	result, err := s.api.VerifyOtp(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.acceptAuth(result)
}

func (s *AuthService) Login(ctx context.Context, req out.LoginRequest) (*domain.Customer, error) {
	result, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.acceptAuth(result)
}

// acceptAuth сохраняет токен до перехода состояния: выданный бэкендом
// токен уже валиден, отдельная валидация не нужна
func (s *AuthService) acceptAuth(result *out.AuthResult) (*domain.Customer, error) {
	if err := s.tokens.Save(result.Token); err != nil {
		return nil, err
	}

	customer := result.Customer

	s.mu.Lock()
	s.token = result.Token
	s.customer = &customer
	s.lastValidated = result.Token
	s.state = AuthStateAuthenticated
	s.mu.Unlock()

	s.notify(AuthStateAuthenticated)
	s.logger.Info("auth.login.success", out.LogFields{
		"customerId": customer.ID,
	})

	return &customer, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, req out.UpdateProfileRequest) (*domain.Customer, error) {
	s.mu.RLock()
	current := s.customer
	s.mu.RUnlock()

	if current == nil {
		return nil, ErrNotAuthenticated
	}

	customer, err := s.api.UpdateProfile(ctx, current.ID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.customer = customer
	s.mu.Unlock()

	return customer, nil
}

// Logout вычищает токен, личность и сохраненное состояние
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.customer = nil
	s.lastValidated = ""
	s.state = AuthStateUnauthenticated
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("auth.logout.clear_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	s.notify(AuthStateUnauthenticated)
	s.logger.Info("auth.logout", out.LogFields{})
}

// ForceLogout вызывается адаптером, когда ранее валидный токен отвергнут:
// истек или отозван на сервере
func (s *AuthService) ForceLogout() {
	if s.State() != AuthStateAuthenticated {
		return
	}

	s.logger.Warn("auth.force_logout", out.LogFields{})
	s.Logout(context.Background())
}

func (s *AuthService) notify(state AuthState) {
	s.mu.RLock()
	listeners := make([]func(AuthState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}
