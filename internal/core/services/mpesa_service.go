package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/config"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// MpesaService drives STK push payments through the Safaricom Daraja API
type MpesaService struct {
	paymentRepo repositories.PaymentRepository
	cfg         config.MpesaConfig
	httpClient  *http.Client
}

// NewMpesaService creates a new M-Pesa service
func NewMpesaService(paymentRepo repositories.PaymentRepository, cfg config.MpesaConfig) *MpesaService {
	return &MpesaService{
		paymentRepo: paymentRepo,
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// STKPushInput represents an STK push request
type STKPushInput struct {
	PhoneNumber string  `json:"phoneNumber" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	AccountRef  string  `json:"accountRef"`
}

// CallbackInput is the Daraja callback envelope, flattened to the fields we
// consume.
type CallbackInput struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	ReceiptNumber     string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKPush initiates a payment prompt on the customer's phone and persists a
// pending payment row keyed by the checkout request id.
func (s *MpesaService) STKPush(ctx context.Context, input *STKPushInput) (*models.MpesaPayment, error) {
	if input.PhoneNumber == "" || input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	phone, err := NormalizePhone(input.PhoneNumber)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	password := DerivePassword(s.cfg.Shortcode, s.cfg.Passkey, timestamp)

	payload := map[string]interface{}{
		"BusinessShortCode": s.cfg.Shortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int(input.Amount),
		"PartyA":            phone,
		"PartyB":            s.cfg.Shortcode,
		"PhoneNumber":       phone,
		"CallBackURL":       s.cfg.CallbackURL,
		"AccountReference":  input.AccountRef,
		"TransactionDesc":   "WASHLAB water payment",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stk push request failed: %w", err)
	}
	defer resp.Body.Close()

	var pushResp stkPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushResp); err != nil {
		return nil, fmt.Errorf("failed to decode stk push response: %w", err)
	}
	if pushResp.ResponseCode != "0" || pushResp.CheckoutRequestID == "" {
		return nil, fmt.Errorf("stk push rejected: %s", pushResp.ResponseDescription)
	}

	payment := &models.MpesaPayment{
		CheckoutRequestID: pushResp.CheckoutRequestID,
		MerchantRequestID: pushResp.MerchantRequestID,
		PhoneNumber:       phone,
		Amount:            input.Amount,
		AccountRef:        input.AccountRef,
		Status:            models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ STK push sent: %s (%s)", payment.CheckoutRequestID, phone)
	return payment, nil
}

// HandleCallback records the asynchronous payment result. ResultCode 0 marks
// the payment paid; anything else marks it failed.
func (s *MpesaService) HandleCallback(ctx context.Context, input *CallbackInput) (*models.MpesaPayment, error) {
	payment, err := s.paymentRepo.GetByCheckoutRequestID(ctx, input.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	payment.ResultDesc = input.ResultDesc
	if input.ResultCode == 0 {
		payment.Status = models.PaymentPaid
		payment.ReceiptNumber = input.ReceiptNumber
		now := time.Now()
		payment.PaidAt = &now
	} else {
		payment.Status = models.PaymentFailed
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ M-Pesa callback: %s → %s", payment.CheckoutRequestID, payment.Status)
	return payment, nil
}

// GetPayment looks up a payment by checkout request id
func (s *MpesaService) GetPayment(ctx context.Context, checkoutRequestID string) (*models.MpesaPayment, error) {
	payment, err := s.paymentRepo.GetByCheckoutRequestID(ctx, checkoutRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments lists payments, optionally by status
func (s *MpesaService) ListPayments(ctx context.Context, status string, offset, limit int) ([]*models.MpesaPayment, int64, error) {
	return s.paymentRepo.List(ctx, status, offset, limit)
}

// accessToken fetches an OAuth client-credentials token from Daraja.
func (s *MpesaService) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.ConsumerKey, s.cfg.Secret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return tok.AccessToken, nil
}

// NormalizePhone converts local Kenyan numbers to MSISDN form:
// 07XXXXXXXX → 2547XXXXXXXX. Numbers already in 254 form pass through.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")

	switch {
	case strings.HasPrefix(phone, "254") && len(phone) == 12:
		return phone, nil
	case strings.HasPrefix(phone, "0") && len(phone) == 10:
		return "254" + phone[1:], nil
	default:
		return "", fmt.Errorf("unrecognized phone format: %s", phone)
	}
}

// DerivePassword builds the Daraja STK password:
// base64(shortcode + passkey + timestamp).
func DerivePassword(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}
