package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/domain"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

func (a *ApiAdapter) GetReservations(ctx context.Context) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	if err := a.request(ctx, http.MethodGet, "/reservations/customer", nil, &reservations); err != nil {
		a.logger.Error("api.reservations.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("api.reservations.fetch_success", out.LogFields{
		"count": len(reservations),
	})

	return reservations, nil
}

func (a *ApiAdapter) GetReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	path := fmt.Sprintf("/reservations/customer/%s", reservationID)

	var reservation domain.Reservation
	if err := a.request(ctx, http.MethodGet, path, nil, &reservation); err != nil {
		a.logger.Error("api.reservation.fetch_failed", out.LogFields{
			"reservationId": reservationID,
			"error":         err.Error(),
		})
		return nil, err
	}

	return &reservation, nil
}

func (a *ApiAdapter) CreateReservation(ctx context.Context, req out.CreateReservationRequest) (*out.CreateReservationResult, error) {
	a.logger.Info("api.reservation.create", out.LogFields{
		"sessionId": req.SessionID,
	})

	var result out.CreateReservationResult
	if err := a.request(ctx, http.MethodPost, "/reservations", req, &result); err != nil {
		a.logger.Error("api.reservation.create_failed", out.LogFields{
			"sessionId": req.SessionID,
			"error":     err.Error(),
		})
		return nil, err
	}

	return &result, nil
}

func (a *ApiAdapter) GetPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := a.request(ctx, http.MethodGet, "/reservations/payment-methods", nil, &methods); err != nil {
		return nil, err
	}

	return methods, nil
}

func (a *ApiAdapter) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	path := fmt.Sprintf("/reservations/payment/%s", paymentID)

	var payment domain.Payment
	if err := a.request(ctx, http.MethodGet, path, nil, &payment); err != nil {
		a.logger.Error("api.payment.fetch_failed", out.LogFields{
			"paymentId": paymentID,
			"error":     err.Error(),
		})
		return nil, err
	}

	return &payment, nil
}

// UploadPaymentProof отправляет подтверждение оплаты как multipart-файл
func (a *ApiAdapter) UploadPaymentProof(ctx context.Context, paymentID uuid.UUID, filename string, proof io.Reader) (*domain.Payment, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("paymentProof", filename)
	if err != nil {
		return nil, fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := io.Copy(part, proof); err != nil {
		return nil, fmt.Errorf("api: copy proof: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: close multipart writer: %w", err)
	}

	path := fmt.Sprintf("%s/reservations/payment/%s/proof", a.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return nil, newNetworkError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payment domain.Payment
	if err := a.do(req, &payment); err != nil {
		a.logger.Error("api.payment.proof_upload_failed", out.LogFields{
			"paymentId": paymentID,
			"error":     err.Error(),
		})
		return nil, err
	}

	a.logger.Info("api.payment.proof_uploaded", out.LogFields{
		"paymentId": paymentID,
	})

	return &payment, nil
}
