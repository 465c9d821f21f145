package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"carzi/internal/models"
	"carzi/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := utils.HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func TestSignupCarOwnerStartsUnverified(t *testing.T) {
	var created *models.User
	userRepo := &mockUserRepo{
		GetByEmailOrPhoneFn: func(ctx context.Context, email, phone string) (*models.User, error) {
			return nil, ErrUserNotFound
		},
		CreateFn: func(ctx context.Context, user *models.User) error {
			user.ID = primitive.NewObjectID()
			created = user
			return nil
		},
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return created, nil
		},
	}
	otpRepo := &mockOTPRepo{
		ReplaceFn: func(ctx context.Context, email, code string) error { return nil },
	}
	mail := &mockMailer{}

	svc := NewAuthService(userRepo, otpRepo, mail, testLogger(), testSecret, "http://localhost:3000")

	user, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "+919876543210",
		Password: "secret123",
		UserType: models.UserTypeCarOwner,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if user.Verified {
		t.Error("car-owner should start unverified")
	}
	if len(mail.sent) != 1 {
		t.Errorf("sent %d emails, want 1 OTP email", len(mail.sent))
	}
}

func TestSignupCustomerIsVerifiedImmediately(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByEmailOrPhoneFn: func(ctx context.Context, email, phone string) (*models.User, error) {
			return nil, ErrUserNotFound
		},
		CreateFn: func(ctx context.Context, user *models.User) error {
			user.ID = primitive.NewObjectID()
			return nil
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, &mockMailer{}, testLogger(), testSecret, "")

	user, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Priya",
		Email:    "priya@example.com",
		Phone:    "+919876500000",
		Password: "secret123",
		UserType: models.UserTypeCustomer,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if !user.Verified {
		t.Error("customer should be verified at signup")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		GetByEmailOrPhoneFn: func(ctx context.Context, email, phone string) (*models.User, error) {
			return &models.User{Email: email, Phone: "+911111111111"}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, &mockMailer{}, testLogger(), testSecret, "")

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Ravi",
		Email:    "taken@example.com",
		Phone:    "+919876543210",
		Password: "secret123",
		UserType: models.UserTypeCustomer,
	})
	if err != ErrEmailTaken {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginUnverifiedCarOwnerSignalsVerification(t *testing.T) {
	hash := hashedPassword(t, "secret123")
	userRepo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:       primitive.NewObjectID(),
				Email:    email,
				Password: hash,
				UserType: models.UserTypeCarOwner,
				Verified: false,
			}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, &mockMailer{}, testLogger(), testSecret, "")

	_, err := svc.Login(context.Background(), "owner@example.com", "secret123")
	if err != ErrVerificationRequired {
		t.Errorf("err = %v, want ErrVerificationRequired", err)
	}

	// Wrong password must come back as a credential error, never leaking
	// that the account exists but is unverified.
	if _, err := svc.Login(context.Background(), "owner@example.com", "wrong"); err != ErrInvalidPassword {
		t.Errorf("wrong password: err = %v, want ErrInvalidPassword", err)
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	hash := hashedPassword(t, "secret123")
	userID := primitive.NewObjectID()
	userRepo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:       userID,
				Email:    email,
				Password: hash,
				UserType: models.UserTypeCustomer,
				Verified: true,
			}, nil
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, &mockMailer{}, testLogger(), testSecret, "")

	resp, err := svc.Login(context.Background(), "priya@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := utils.ValidateToken(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Error("token carries the wrong user id")
	}
}

func TestVerifyOTPMarksUserVerified(t *testing.T) {
	otpID := primitive.NewObjectID()
	verified := false
	otpDeleted := false

	userRepo := &mockUserRepo{
		SetVerifiedFn: func(ctx context.Context, email string) error {
			verified = true
			return nil
		},
	}
	otpRepo := &mockOTPRepo{
		GetByEmailAndCodeFn: func(ctx context.Context, email, code string) (*models.OTP, error) {
			if code != "123456" {
				return nil, ErrInvalidOTP
			}
			return &models.OTP{ID: otpID, Email: email, Code: code, CreatedAt: time.Now()}, nil
		},
		DeleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			otpDeleted = true
			return nil
		},
	}

	svc := NewAuthService(userRepo, otpRepo, &mockMailer{}, testLogger(), testSecret, "")

	if err := svc.VerifyOTP(context.Background(), "owner@example.com", "000000"); err != ErrInvalidOTP {
		t.Errorf("wrong code: err = %v, want ErrInvalidOTP", err)
	}
	if verified {
		t.Fatal("user verified with a wrong code")
	}

	if err := svc.VerifyOTP(context.Background(), "owner@example.com", "123456"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if !verified {
		t.Error("user was not marked verified")
	}
	if !otpDeleted {
		t.Error("consumed OTP was not deleted")
	}
}

func TestVerifyOTPRejectsStaleCode(t *testing.T) {
	otpRepo := &mockOTPRepo{
		GetByEmailAndCodeFn: func(ctx context.Context, email, code string) (*models.OTP, error) {
			return &models.OTP{
				ID:        primitive.NewObjectID(),
				Email:     email,
				Code:      code,
				CreatedAt: time.Now().Add(-10 * time.Minute),
			}, nil
		},
	}
	userRepo := &mockUserRepo{
		SetVerifiedFn: func(ctx context.Context, email string) error {
			t.Error("stale OTP must not verify the user")
			return nil
		},
	}

	svc := NewAuthService(userRepo, otpRepo, &mockMailer{}, testLogger(), testSecret, "")

	if err := svc.VerifyOTP(context.Background(), "owner@example.com", "123456"); err != ErrInvalidOTP {
		t.Errorf("err = %v, want ErrInvalidOTP", err)
	}
}

func TestForgotPasswordRollsBackTokenOnMailFailure(t *testing.T) {
	userID := primitive.NewObjectID()
	tokenSet := false
	tokenCleared := false

	userRepo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: userID, Email: email, Name: "Ravi"}, nil
		},
		SetResetTokenFn: func(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
			tokenSet = true
			return nil
		},
		ClearResetTokenFn: func(ctx context.Context, id primitive.ObjectID) error {
			tokenCleared = true
			return nil
		},
	}
	mail := &mockMailer{
		SendEmailFn: func(ctx context.Context, to, subject, body string) error {
			return errors.New("smtp down")
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, mail, testLogger(), testSecret, "http://localhost:3000")

	if err := svc.ForgotPassword(context.Background(), "ravi@example.com"); err == nil {
		t.Fatal("expected error when the reset email cannot be sent")
	}
	if !tokenSet {
		t.Error("reset token was never written")
	}
	if !tokenCleared {
		t.Error("reset token was not rolled back after the mail failure")
	}
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	userID := primitive.NewObjectID()
	tokenHash := utils.HashResetToken("the-token")
	consumed := false

	userRepo := &mockUserRepo{
		GetByResetTokenFn: func(ctx context.Context, hash string, now time.Time) (*models.User, error) {
			if consumed || hash != tokenHash {
				return nil, ErrInvalidResetToken
			}
			return &models.User{ID: userID}, nil
		},
		UpdatePasswordFn: func(ctx context.Context, id primitive.ObjectID, hash string) error {
			return nil
		},
		ClearResetTokenFn: func(ctx context.Context, id primitive.ObjectID) error {
			consumed = true
			return nil
		},
	}

	svc := NewAuthService(userRepo, &mockOTPRepo{}, &mockMailer{}, testLogger(), testSecret, "")

	if err := svc.ResetPassword(context.Background(), "the-token", "newsecret"); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "the-token", "another"); err != ErrInvalidResetToken {
		t.Errorf("second use: err = %v, want ErrInvalidResetToken", err)
	}
}
