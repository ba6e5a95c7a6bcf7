package services

import (
	"context"
	"errors"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/config"

	"gorm.io/gorm"
)

func mpesaTestConfig() config.MpesaConfig {
	return config.MpesaConfig{
		BaseURL:     "https://sandbox.safaricom.co.ke",
		ConsumerKey: "key",
		Secret:      "secret",
		Shortcode:   "174379",
		Passkey:     "passkey",
		CallbackURL: "https://api.washlab.org/api/v1/payments/callback",
	}
}

// In-memory repository fakes. Each embeds its interface so only the methods a
// test exercises need implementing.

type fakeUserRepo struct {
	repositories.UserRepository
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func userWith(email, passwordHash, role string) *models.User {
	return &models.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Password:   passwordHash,
		Role:       role,
		IsVerified: true,
	}
}

type fakeMailer struct {
	sent map[string]string // email → last code
	fail bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(map[string]string)}
}

func (f *fakeMailer) SendVerificationCode(to, code string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent[to] = code
	return nil
}

type fakeAssetRepo struct {
	repositories.AssetRepository
	assets map[uint]*models.Asset
}

func newFakeAssetRepo(assets ...*models.Asset) *fakeAssetRepo {
	f := &fakeAssetRepo{assets: make(map[uint]*models.Asset)}
	for _, a := range assets {
		f.assets[a.ID] = a
	}
	return f
}

func (f *fakeAssetRepo) GetByID(_ context.Context, id uint) (*models.Asset, error) {
	if a, ok := f.assets[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSampleRepo struct {
	repositories.WaterQualityRepository
	created []*models.WaterQualitySample
}

func (f *fakeSampleRepo) Create(_ context.Context, sample *models.WaterQualitySample) error {
	sample.ID = uint(len(f.created) + 1)
	f.created = append(f.created, sample)
	return nil
}

type fakeBillingRepo struct {
	repositories.BillingRepository
	summaries []*models.BillingSummary
	debtors   []*models.BillingSummary
}

func (f *fakeBillingRepo) ListSummariesOverlapping(_ context.Context, _, _ time.Time) ([]*models.BillingSummary, error) {
	return f.summaries, nil
}

func (f *fakeBillingRepo) ListDebtors(_ context.Context) ([]*models.BillingSummary, error) {
	return f.debtors, nil
}

type fakeTelemetryRepo struct {
	repositories.TelemetryRepository
	latest []*models.Telemetry
}

func (f *fakeTelemetryRepo) LatestPerAsset(_ context.Context) ([]*models.Telemetry, error) {
	return f.latest, nil
}

type fakeTicketRepo struct {
	repositories.TicketRepository
	created []*models.Ticket
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	ticket.ID = uint(len(f.created) + 1)
	f.created = append(f.created, ticket)
	return nil
}

type fakePaymentRepo struct {
	repositories.PaymentRepository
	payments map[string]*models.MpesaPayment
}

func newFakePaymentRepo(payments ...*models.MpesaPayment) *fakePaymentRepo {
	f := &fakePaymentRepo{payments: make(map[string]*models.MpesaPayment)}
	for _, p := range payments {
		f.payments[p.CheckoutRequestID] = p
	}
	return f
}

func (f *fakePaymentRepo) GetByCheckoutRequestID(_ context.Context, id string) (*models.MpesaPayment, error) {
	if p, ok := f.payments[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *models.MpesaPayment) error {
	f.payments[payment.CheckoutRequestID] = payment
	return nil
}
