package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ravij-p/sandhan-backend/internal/config"
	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/repositories"
	"github.com/Ravij-p/sandhan-backend/internal/utils"
	"github.com/Ravij-p/sandhan-backend/pkg/mailer"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

const otpValidity = 10 * time.Minute

type AuthServiceImpl struct {
	studentRepo repositories.StudentRepository
	adminRepo   repositories.AdminRepository
	otpRepo     repositories.OTPRepository
	mail        mailer.Sender
	cfg         *config.Config
}

func NewAuthService(
	studentRepo repositories.StudentRepository,
	adminRepo repositories.AdminRepository,
	otpRepo repositories.OTPRepository,
	mail mailer.Sender,
	cfg *config.Config,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
		otpRepo:     otpRepo,
		mail:        mail,
		cfg:         cfg,
	}
}

// RegisterStudent creates a new active student account
func (s *AuthServiceImpl) RegisterStudent(ctx context.Context, req *models.RegisterRequest) (*models.Student, error) {
	_, err := s.studentRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	slog.Info("student registered", "email", student.Email, "studentId", student.ID)
	return student, nil
}

// LoginStudent authenticates a student and returns a JWT
func (s *AuthServiceImpl) LoginStudent(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	student, err := s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	if !student.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(student.ID.Hex(), student.Email, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{Token: token, Role: models.RoleStudent, Name: student.Name}, nil
}

// LoginAdmin authenticates an admin and returns a JWT
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin.ID.Hex(), admin.Email, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{Token: token, Role: models.RoleAdmin, Name: admin.Name}, nil
}

// ForgotPassword issues a password-reset code to a registered student
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Do not reveal whether the address is registered.
			slog.Warn("password reset requested for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("failed to find student: %w", err)
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email, models.OTPPurposePasswordReset); err != nil {
		return fmt.Errorf("failed to clear previous codes: %w", err)
	}

	code := utils.GenerateOTPCode()
	otp := &models.OTP{
		Email:     email,
		Code:      code,
		Purpose:   models.OTPPurposePasswordReset,
		ExpiresAt: time.Now().Add(otpValidity),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	body := fmt.Sprintf("Your Sandhan password reset code is %s. It expires in 10 minutes.", code)
	if err := s.mail.Send(ctx, email, "Password reset code", body); err != nil {
		return fmt.Errorf("failed to send code: %w", err)
	}
	slog.Info("password reset code issued", "email", email)
	return nil
}

// ResetPassword redeems a password-reset code
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := s.otpRepo.FindValid(ctx, email, code, models.OTPPurposePasswordReset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to check code: %w", err)
	}

	student, err := s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to find student: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.studentRepo.UpdatePassword(ctx, student.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Codes are single-use.
	if err := s.otpRepo.DeleteByEmail(ctx, email, models.OTPPurposePasswordReset); err != nil {
		slog.Warn("failed to delete redeemed code", "email", email, "error", err)
	}
	slog.Info("password reset", "email", email)
	return nil
}

func (s *AuthServiceImpl) issueToken(sub, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
