package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

func TestBootstrapWithoutToken(t *testing.T) {
	auth := NewAuthService(&fakeApi{}, &memTokenStore{}, nopLogger{})

	if auth.Ready() {
		t.Fatal("expected not ready before bootstrap")
	}

	if err := auth.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if auth.State() != AuthStateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", auth.State())
	}
	if !auth.Ready() {
		t.Fatal("expected ready after bootstrap")
	}
}

func TestBootstrapValidatesStoredToken(t *testing.T) {
	customer := domain.Customer{ID: uuid.New(), Name: "Sari"}
	var profileCalls int
	api := &fakeApi{
		getProfileFn: func(ctx context.Context) (*domain.Customer, error) {
			profileCalls++
			return &customer, nil
		},
	}

	tokens := &memTokenStore{token: "stored-token"}
	auth := NewAuthService(api, tokens, nopLogger{})

	if err := auth.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if !auth.IsAuthenticated() {
		t.Fatalf("expected authenticated, got %s", auth.State())
	}
	if got := auth.Customer(); got == nil || got.ID != customer.ID {
		t.Fatalf("expected validated customer, got %+v", got)
	}
	if token, ok := auth.Token(); !ok || token != "stored-token" {
		t.Fatalf("expected stored token to be kept, got %q", token)
	}
	if profileCalls != 1 {
		t.Fatalf("expected exactly one validation call, got %d", profileCalls)
	}

	// Повторный Bootstrap - no-op, без повторной валидации
	if err := auth.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}
	if profileCalls != 1 {
		t.Fatalf("expected bootstrap to run once, got %d validation calls", profileCalls)
	}
}

func TestBootstrapPurgesRejectedToken(t *testing.T) {
	api := &fakeApi{
		getProfileFn: func(ctx context.Context) (*domain.Customer, error) {
			return nil, errors.New("token revoked")
		},
	}

	tokens := &memTokenStore{token: "expired-token"}
	auth := NewAuthService(api, tokens, nopLogger{})

	if err := auth.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if auth.State() != AuthStateUnauthenticated {
		t.Fatalf("expected unauthenticated after rejected token, got %s", auth.State())
	}
	if _, ok := auth.Token(); ok {
		t.Fatal("expected in-memory token to be purged")
	}
	if stored, _ := tokens.Load(); stored != "" {
		t.Fatalf("expected persisted token to be purged, got %q", stored)
	}
	if auth.Customer() != nil {
		t.Fatal("expected no customer after rejected token")
	}
}

func TestLoginPersistsTokenAndIdentity(t *testing.T) {
	tokens := &memTokenStore{}
	customer := domain.Customer{ID: uuid.New(), Name: "Sari", Phone: "+628111111111"}
	api := &fakeApi{
		loginFn: func(ctx context.Context, req out.LoginRequest) (*out.AuthResult, error) {
			return &out.AuthResult{Token: "fresh-token", Customer: customer}, nil
		},
	}

	auth := NewAuthService(api, tokens, nopLogger{})

	got, err := auth.Login(context.Background(), out.LoginRequest{Phone: customer.Phone, Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got.ID != customer.ID {
		t.Fatalf("expected logged-in customer, got %+v", got)
	}
	if !auth.IsAuthenticated() {
		t.Fatalf("expected authenticated, got %s", auth.State())
	}
	if stored, _ := tokens.Load(); stored != "fresh-token" {
		t.Fatalf("expected token persisted, got %q", stored)
	}
}

func TestVerifyOtpSignsIn(t *testing.T) {
	tokens := &memTokenStore{}
	customer := domain.Customer{ID: uuid.New(), Phone: "+628111111111"}
	api := &fakeApi{
		verifyOtpFn: func(ctx context.Context, req out.VerifyOtpRequest) (*out.AuthResult, error) {
			if req.Code != "1234" {
				return nil, errors.New("wrong otp")
			}
			return &out.AuthResult{Token: "otp-token", Customer: customer}, nil
		},
	}

	auth := NewAuthService(api, tokens, nopLogger{})

	if _, err := auth.VerifyOtp(context.Background(), out.VerifyOtpRequest{Phone: customer.Phone, Code: "1234"}); err != nil {
		t.Fatalf("VerifyOtp: %v", err)
	}

	if !auth.IsAuthenticated() {
		t.Fatalf("expected authenticated after otp verification, got %s", auth.State())
	}
	if stored, _ := tokens.Load(); stored != "otp-token" {
		t.Fatalf("expected otp token persisted, got %q", stored)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	api := &fakeApi{}
	auth := authenticatedService(t, api)
	tokens := auth.tokens.(*memTokenStore)

	var states []AuthState
	auth.OnStateChange(func(state AuthState) {
		states = append(states, state)
	})

	auth.Logout(context.Background())

	if auth.State() != AuthStateUnauthenticated {
		t.Fatalf("expected unauthenticated after logout, got %s", auth.State())
	}
	if _, ok := auth.Token(); ok {
		t.Fatal("expected no token after logout")
	}
	if auth.Customer() != nil {
		t.Fatal("expected no customer after logout")
	}
	if stored, _ := tokens.Load(); stored != "" {
		t.Fatalf("expected persisted token cleared, got %q", stored)
	}
	if len(states) != 1 || states[0] != AuthStateUnauthenticated {
		t.Fatalf("expected single unauthenticated notification, got %v", states)
	}
}

func TestForceLogoutOnlyWhenAuthenticated(t *testing.T) {
	auth := NewAuthService(&fakeApi{}, &memTokenStore{}, nopLogger{})

	var notified int
	auth.OnStateChange(func(state AuthState) {
		notified++
	})

	// До входа принудительный выход игнорируется
	auth.ForceLogout()
	if notified != 0 {
		t.Fatalf("expected no transition before login, got %d notifications", notified)
	}
	if auth.State() != AuthStateUninitialized {
		t.Fatalf("expected uninitialized state, got %s", auth.State())
	}
}

func TestForceLogoutDropsRevokedSession(t *testing.T) {
	auth := authenticatedService(t, &fakeApi{})

	auth.ForceLogout()

	if auth.State() != AuthStateUnauthenticated {
		t.Fatalf("expected unauthenticated after forced logout, got %s", auth.State())
	}
	if _, ok := auth.Token(); ok {
		t.Fatal("expected token dropped after forced logout")
	}
}

func TestUpdateProfileRequiresIdentity(t *testing.T) {
	auth := NewAuthService(&fakeApi{}, &memTokenStore{}, nopLogger{})

	if _, err := auth.UpdateProfile(context.Background(), out.UpdateProfileRequest{Name: "New"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
