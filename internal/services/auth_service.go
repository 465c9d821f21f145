package services

import (
	"context"
	"fmt"
	"time"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/internal/utils"
	"carzi/pkg/logger"
	"carzi/pkg/mailer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type SignupRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"required,min=10,max=15"`
	Password string          `json:"password" validate:"required,min=6"`
	UserType models.UserType `json:"type" validate:"required,oneof=customer car-owner"`
	Aadhaar  string          `json:"aadhaar,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	otpRepo   interfaces.OTPRepository
	mailer    mailer.Mailer
	logger    *logger.Logger
	jwtSecret string
	clientURL string
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	otpRepo interfaces.OTPRepository,
	mail mailer.Mailer,
	log *logger.Logger,
	jwtSecret string,
	clientURL string,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		mailer:    mail,
		logger:    log,
		jwtSecret: jwtSecret,
		clientURL: clientURL,
	}
}

// Signup registers an account. Customers are trusted immediately; car-owners
// start unverified and receive an OTP email to confirm ownership of the
// address before they can log in.
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil && err != ErrUserNotFound {
		return nil, err
	}
	if existing != nil {
		if existing.Email == req.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrPhoneTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		UserType: req.UserType,
		Verified: req.UserType != models.UserTypeCarOwner,
		Aadhaar:  req.Aadhaar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("user_type", user.UserType).Info("User registered")

	if user.IsCarOwner() {
		if err := s.SendOTP(ctx, user.Email); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to send verification OTP after signup")
		}
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidPassword
	}

	if !user.Verified {
		return nil, ErrVerificationRequired
	}

	token, err := utils.GenerateToken(user.ID, string(user.UserType), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User logged in")

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) SendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code := utils.GenerateRandomNumericString(utils.OTPLength)
	if err := s.otpRepo.Replace(ctx, user.Email, code); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s verification code is <b>%s</b>. It expires in %d minutes.</p>",
		user.Name, utils.AppName, code, int(utils.OTPExpiry.Minutes()),
	)
	if err := s.mailer.SendEmail(ctx, user.Email, utils.AppName+" verification code", body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("Verification OTP sent")

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.GetByEmailAndCode(ctx, email, code)
	if err != nil {
		return err
	}

	// The TTL index reaps expired codes eventually; reject stale ones that
	// have not been swept yet.
	if time.Since(otp.CreatedAt) > utils.OTPExpiry {
		return ErrInvalidOTP
	}

	if err := s.userRepo.SetVerified(ctx, email); err != nil {
		return err
	}

	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to delete consumed OTP")
	}

	s.logger.WithField("email", email).Info("User verified via OTP")

	return nil
}

// ForgotPassword issues a single-use reset token. Only the SHA-256 digest is
// stored; the plaintext token travels in the emailed link. If the email fails
// to send the token is rolled back so a dead token never lingers.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := utils.GeneratePasswordResetToken()
	expiry := time.Now().Add(utils.ResetTokenExpiry)
	if err := s.userRepo.SetResetToken(ctx, user.ID, utils.HashResetToken(token), expiry); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=\"%s\">here</a> to reset your %s password. The link expires in 1 hour.</p>",
		user.Name, resetLink, utils.AppName,
	)
	if err := s.mailer.SendEmail(ctx, user.Email, utils.AppName+" password reset", body); err != nil {
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.WithError(clearErr).WithUserID(user.ID).Error("Failed to roll back reset token")
		}
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("Password reset token issued")

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(ctx, utils.HashResetToken(token), time.Now())
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return err
	}

	s.logger.WithUserID(user.ID).Info("Password reset completed")

	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
