package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

func (a *ApiAdapter) Register(ctx context.Context, req out.RegisterRequest) (*domain.Customer, error) {
	a.logger.Info("api.register.request", out.LogFields{
		"phone": req.Phone,
	})

	var customer domain.Customer
	if err := a.request(ctx, http.MethodPost, "/customer/register", req, &customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (a *ApiAdapter) VerifyOtp(ctx context.Context, req out.VerifyOtpRequest) (*out.AuthResult, error) {
	var result out.AuthResult
	if err := a.request(ctx, http.MethodPost, "/customer/verify-otp", req, &result); err != nil {
		a.logger.Error("api.verify_otp.failed", out.LogFields{
			"phone": req.Phone,
			"error": err.Error(),
		})
		return nil, err
	}

	return &result, nil
}

func (a *ApiAdapter) ResendOtp(ctx context.Context, req out.ResendOtpRequest) error {
	return a.request(ctx, http.MethodPost, "/customer/resend-otp", req, nil)
}

func (a *ApiAdapter) Login(ctx context.Context, req out.LoginRequest) (*out.AuthResult, error) {
	a.logger.Info("api.login.request", out.LogFields{
		"phone": req.Phone,
	})

	var result out.AuthResult
	if err := a.request(ctx, http.MethodPost, "/customer/login", req, &result); err != nil {
		a.logger.Error("api.login.failed", out.LogFields{
			"phone": req.Phone,
			"error": err.Error(),
		})
		return nil, err
	}

	return &result, nil
}

func (a *ApiAdapter) GetProfile(ctx context.Context) (*domain.Customer, error) {
	var customer domain.Customer
	if err := a.request(ctx, http.MethodGet, "/customer/profile", nil, &customer); err != nil {
		a.logger.Error("api.profile.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("api.profile.fetch_success", out.LogFields{
		"customerId": customer.ID,
	})

	return &customer, nil
}

func (a *ApiAdapter) UpdateProfile(ctx context.Context, customerID uuid.UUID, req out.UpdateProfileRequest) (*domain.Customer, error) {
	path := fmt.Sprintf("/customer/update/%s", customerID)

	var customer domain.Customer
	if err := a.request(ctx, http.MethodPut, path, req, &customer); err != nil {
		a.logger.Error("api.profile.update_failed", out.LogFields{
			"customerId": customerID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return &customer, nil
}

func (a *ApiAdapter) UpdatePlayerID(ctx context.Context, playerID string) error {
	body := map[string]string{"playerId": playerID}
	if err := a.request(ctx, http.MethodPost, "/customer/update-player-id", body, nil); err != nil {
		a.logger.Error("api.player_id.update_failed", out.LogFields{
			"playerId": playerID,
			"error":    err.Error(),
		})
		return err
	}

	return nil
}
