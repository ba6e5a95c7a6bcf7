package services

import (
	"context"
	"testing"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"local format", "0712345678", "254712345678", false},
		{"msisdn passes through", "254712345678", "254712345678", false},
		{"plus prefix stripped", "+254712345678", "254712345678", false},
		{"whitespace trimmed", " 0712345678 ", "254712345678", false},
		{"too short", "071234567", "", true},
		{"foreign number", "447912345678", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePassword(t *testing.T) {
	got := DerivePassword("174379", "passkey", "20260828120000")
	assert.Equal(t, "MTc0Mzc5cGFzc2tleTIwMjYwODI4MTIwMDAw", got)
}

func TestHandleCallback_Success(t *testing.T) {
	repo := newFakePaymentRepo(&models.MpesaPayment{
		CheckoutRequestID: "ws_CO_1",
		Status:            models.PaymentPending,
	})
	svc := NewMpesaService(repo, mpesaTestConfig())

	payment, err := svc.HandleCallback(context.Background(), &CallbackInput{
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        0,
		ResultDesc:        "The service request is processed successfully.",
		ReceiptNumber:     "TH12ABC456",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Equal(t, "TH12ABC456", payment.ReceiptNumber)
	require.NotNil(t, payment.PaidAt)
}

func TestHandleCallback_Failure(t *testing.T) {
	repo := newFakePaymentRepo(&models.MpesaPayment{
		CheckoutRequestID: "ws_CO_2",
		Status:            models.PaymentPending,
	})
	svc := NewMpesaService(repo, mpesaTestConfig())

	payment, err := svc.HandleCallback(context.Background(), &CallbackInput{
		CheckoutRequestID: "ws_CO_2",
		ResultCode:        1032,
		ResultDesc:        "Request cancelled by user.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, payment.Status)
	assert.Nil(t, payment.PaidAt)
	assert.Empty(t, payment.ReceiptNumber)
}

func TestHandleCallback_UnknownCheckout(t *testing.T) {
	svc := NewMpesaService(newFakePaymentRepo(), mpesaTestConfig())

	_, err := svc.HandleCallback(context.Background(), &CallbackInput{CheckoutRequestID: "ws_CO_missing"})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestSTKPush_InvalidInput(t *testing.T) {
	svc := NewMpesaService(newFakePaymentRepo(), mpesaTestConfig())

	_, err := svc.STKPush(context.Background(), &STKPushInput{PhoneNumber: "", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.STKPush(context.Background(), &STKPushInput{PhoneNumber: "0712345678", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.STKPush(context.Background(), &STKPushInput{PhoneNumber: "12345", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
