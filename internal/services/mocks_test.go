package services

import (
	"context"
	"time"

	"carzi/internal/models"
	"carzi/internal/utils"
	"carzi/pkg/logger"
	"carzi/pkg/payment"
	"carzi/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	return log
}

type mockUserRepo struct {
	CreateFn            func(ctx context.Context, user *models.User) error
	GetByIDFn           func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmailFn        func(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrPhoneFn func(ctx context.Context, email, phone string) (*models.User, error)
	SetVerifiedFn       func(ctx context.Context, email string) error
	UpdatePasswordFn    func(ctx context.Context, id primitive.ObjectID, hash string) error
	SetResetTokenFn     func(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error
	ClearResetTokenFn   func(ctx context.Context, id primitive.ObjectID) error
	GetByResetTokenFn   func(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) GetByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	return m.GetByEmailOrPhoneFn(ctx, email, phone)
}
func (m *mockUserRepo) SetVerified(ctx context.Context, email string) error {
	return m.SetVerifiedFn(ctx, email)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return m.UpdatePasswordFn(ctx, id, hash)
}
func (m *mockUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
	return m.SetResetTokenFn(ctx, id, tokenHash, expiry)
}
func (m *mockUserRepo) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	return m.ClearResetTokenFn(ctx, id)
}
func (m *mockUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return m.GetByResetTokenFn(ctx, tokenHash, now)
}

type mockCarRepo struct {
	CreateFn       func(ctx context.Context, car *models.Car) error
	GetByIDFn      func(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	UpdateFn       func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteFn       func(ctx context.Context, id primitive.ObjectID) error
	ListFn         func(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetByOwnerIDFn func(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error)
	GetUnavailFn   func(ctx context.Context) ([]*models.Car, error)
	ReserveFn      func(ctx context.Context, id primitive.ObjectID) error
	ReleaseFn      func(ctx context.Context, id primitive.ObjectID) error
	UpdateRatingFn func(ctx context.Context, id primitive.ObjectID, rating float64, count int64) error
}

func (m *mockCarRepo) Create(ctx context.Context, car *models.Car) error {
	return m.CreateFn(ctx, car)
}
func (m *mockCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockCarRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return m.UpdateFn(ctx, id, updates)
}
func (m *mockCarRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockCarRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return m.ListFn(ctx, params)
}
func (m *mockCarRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	return m.GetByOwnerIDFn(ctx, ownerID)
}
func (m *mockCarRepo) GetUnavailable(ctx context.Context) ([]*models.Car, error) {
	return m.GetUnavailFn(ctx)
}
func (m *mockCarRepo) Reserve(ctx context.Context, id primitive.ObjectID) error {
	return m.ReserveFn(ctx, id)
}
func (m *mockCarRepo) Release(ctx context.Context, id primitive.ObjectID) error {
	return m.ReleaseFn(ctx, id)
}
func (m *mockCarRepo) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, count int64) error {
	return m.UpdateRatingFn(ctx, id, rating, count)
}

type mockBookingRepo struct {
	CreateFn              func(ctx context.Context, booking *models.Booking) error
	GetByIDFn             func(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByCustomerIDFn     func(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error)
	GetByOwnerIDFn        func(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error)
	UpdatePaymentStatusFn func(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error
	UpdateBookingStatusFn func(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
	HasActiveBookingFn    func(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return m.CreateFn(ctx, booking)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockBookingRepo) GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error) {
	return m.GetByCustomerIDFn(ctx, customerID)
}
func (m *mockBookingRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error) {
	return m.GetByOwnerIDFn(ctx, ownerID)
}
func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	return m.UpdatePaymentStatusFn(ctx, id, status)
}
func (m *mockBookingRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	return m.UpdateBookingStatusFn(ctx, id, status)
}
func (m *mockBookingRepo) HasActiveBooking(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error) {
	return m.HasActiveBookingFn(ctx, carID, now)
}

type mockReviewRepo struct {
	CreateFn          func(ctx context.Context, review *models.Review) error
	GetByIDFn         func(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetByCarIDFn      func(ctx context.Context, carID primitive.ObjectID) ([]*models.Review, error)
	GetByCarAndUserFn func(ctx context.Context, carID, userID primitive.ObjectID) (*models.Review, error)
	DeleteFn          func(ctx context.Context, id primitive.ObjectID) error
	GetCarAggregateFn func(ctx context.Context, carID primitive.ObjectID) (float64, int64, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.CreateFn(ctx, review)
}
func (m *mockReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockReviewRepo) GetByCarID(ctx context.Context, carID primitive.ObjectID) ([]*models.Review, error) {
	return m.GetByCarIDFn(ctx, carID)
}
func (m *mockReviewRepo) GetByCarAndUser(ctx context.Context, carID, userID primitive.ObjectID) (*models.Review, error) {
	return m.GetByCarAndUserFn(ctx, carID, userID)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockReviewRepo) GetCarAggregate(ctx context.Context, carID primitive.ObjectID) (float64, int64, error) {
	return m.GetCarAggregateFn(ctx, carID)
}

type mockOTPRepo struct {
	ReplaceFn           func(ctx context.Context, email, code string) error
	GetByEmailAndCodeFn func(ctx context.Context, email, code string) (*models.OTP, error)
	DeleteFn            func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockOTPRepo) Replace(ctx context.Context, email, code string) error {
	return m.ReplaceFn(ctx, email, code)
}
func (m *mockOTPRepo) GetByEmailAndCode(ctx context.Context, email, code string) (*models.OTP, error) {
	return m.GetByEmailAndCodeFn(ctx, email, code)
}
func (m *mockOTPRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFn(ctx, id)
}

type mockMailer struct {
	SendEmailFn func(ctx context.Context, to, subject, body string) error
	sent        []string
}

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to)
	if m.SendEmailFn != nil {
		return m.SendEmailFn(ctx, to, subject, body)
	}
	return nil
}

type mockGateway struct {
	CreateOrderFn func(ctx context.Context, req *payment.OrderRequest) (*payment.Order, error)
}

func (m *mockGateway) CreateOrder(ctx context.Context, req *payment.OrderRequest) (*payment.Order, error) {
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, req)
	}
	return &payment.Order{ID: "order_test", Amount: req.Amount, Currency: req.Currency, Status: "created"}, nil
}

type mockStorage struct {
	UploadFn func(ctx context.Context, req *storage.UploadRequest) (*storage.UploadResponse, error)
	DeleteFn func(ctx context.Context, key string) error
}

func (m *mockStorage) Upload(ctx context.Context, req *storage.UploadRequest) (*storage.UploadResponse, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, req)
	}
	return &storage.UploadResponse{Key: req.Key, URL: "http://cdn.test/" + req.Key}, nil
}
func (m *mockStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}
func (m *mockStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "http://cdn.test/" + key, nil
}
