package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

var (
	// ErrAdminUserNotFound indicates the account does not exist.
	ErrAdminUserNotFound = errors.New("admin user not found")
	// ErrAdminUserExists indicates the email is already registered.
	ErrAdminUserExists = errors.New("an account with this email already exists")
	// ErrLastRootUser prevents removing or demoting the final root account.
	ErrLastRootUser = errors.New("cannot remove the last root account")
)

// AdminUserService manages back-office accounts.
type AdminUserService interface {
	List(ctx context.Context) ([]dto.AdminUserResponse, error)
	Create(ctx context.Context, payload dto.AdminUserCreateRequest, actor AuditActor) (dto.AdminUserResponse, error)
	ChangeRole(ctx context.Context, id uint, payload dto.AdminUserRoleRequest, actor AuditActor) (dto.AdminUserResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
}

type adminUserService struct {
	repo      repository.AdminUserRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(repo repository.AdminUserRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
	}
	return responses, nil
}

func (s *adminUserService) Create(ctx context.Context, payload dto.AdminUserCreateRequest, actor AuditActor) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.AdminUserResponse{}, ErrAdminUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AdminUserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AdminUserResponse{}, err
	}

	user := models.AdminUser{
		Email:        email,
		Name:         strings.TrimSpace(payload.Name),
		Role:         payload.Role,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.AdminUserResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionUserCreate,
		Target:   "admin_user",
		TargetID: strconv.FormatUint(uint64(user.ID), 10),
		Details:  map[string]interface{}{"email": maskEmail(user.Email), "role": user.Role},
	})

	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) ChangeRole(ctx context.Context, id uint, payload dto.AdminUserRoleRequest, actor AuditActor) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrAdminUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}

	if current.Role == models.RoleRoot && payload.Role != models.RoleRoot {
		last, err := s.isLastRoot(ctx, id)
		if err != nil {
			return dto.AdminUserResponse{}, err
		}
		if last {
			return dto.AdminUserResponse{}, ErrLastRootUser
		}
	}

	updated, err := s.repo.UpdateRole(ctx, id, payload.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrAdminUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionUserRoleChange,
		Target:   "admin_user",
		TargetID: strconv.FormatUint(uint64(id), 10),
		Details: map[string]interface{}{
			"previous_role": current.Role,
			"new_role":      payload.Role,
		},
	})

	return dto.NewAdminUserResponse(updated), nil
}

func (s *adminUserService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminUserNotFound
		}
		return err
	}

	if current.Role == models.RoleRoot {
		last, err := s.isLastRoot(ctx, id)
		if err != nil {
			return err
		}
		if last {
			return ErrLastRootUser
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminUserNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionUserDelete,
		Target:   "admin_user",
		TargetID: strconv.FormatUint(uint64(id), 10),
		Details:  map[string]interface{}{"email": maskEmail(current.Email)},
	})
	return nil
}

func (s *adminUserService) isLastRoot(ctx context.Context, excludeID uint) (bool, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, user := range users {
		if user.ID != excludeID && user.Role == models.RoleRoot {
			return false, nil
		}
	}
	return true, nil
}
