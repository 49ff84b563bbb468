package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

func (a *ApiAdapter) CreateRating(ctx context.Context, req out.CreateRatingRequest) (*domain.Rating, error) {
	var rating domain.Rating
	if err := a.request(ctx, http.MethodPost, "/ratings", req, &rating); err != nil {
		a.logger.Error("api.rating.create_failed", out.LogFields{
			"reservationId": req.ReservationID,
			"error":         err.Error(),
		})
		return nil, err
	}

	return &rating, nil
}

func (a *ApiAdapter) GetRatingSession(ctx context.Context, token string) (*domain.RatingSession, error) {
	path := fmt.Sprintf("/ratings/session/%s", token)

	var session domain.RatingSession
	if err := a.request(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (a *ApiAdapter) CreateManualRating(ctx context.Context, req out.ManualRatingRequest) (*domain.Rating, error) {
	var rating domain.Rating
	if err := a.request(ctx, http.MethodPost, "/ratings/manual", req, &rating); err != nil {
		a.logger.Error("api.rating.manual_create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &rating, nil
}
