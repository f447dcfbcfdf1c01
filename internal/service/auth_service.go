package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// the two cases are indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid email or password")

const sessionTTL = 12 * time.Hour

// AuthService issues back-office session tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest, metadata AuditMetadata) (dto.LoginResponse, error)
	Logout(ctx context.Context, actor AuditActor, metadata AuditMetadata)
}

type authService struct {
	users     repository.AdminUserRepository
	validator *validator.Validate
	audit     AuditRecorder
	secret    []byte
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.AdminUserRepository, validate *validator.Validate, audit AuditRecorder, secret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validate,
		audit:     audit,
		secret:    []byte(secret),
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest, metadata AuditMetadata) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a comparison anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinvali"), []byte(payload.Password))
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn().Str("email", maskEmail(user.Email)).Msg("failed login attempt")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.Role,
		"iat":   s.now().Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    AuditActor{ID: strconv.FormatUint(uint64(user.ID), 10), Email: user.Email},
		Action:   models.ActionAdminLogin,
		Target:   "session",
		Metadata: metadata,
	})

	return dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      dto.NewAdminUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, actor AuditActor, metadata AuditMetadata) {
	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionAdminLogout,
		Target:   "session",
		Metadata: metadata,
	})
}
