package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
)

type adminUserRepoStub struct {
	users  map[uint]models.AdminUser
	nextID uint
}

func newAdminUserRepoStub(users ...models.AdminUser) *adminUserRepoStub {
	stub := &adminUserRepoStub{users: make(map[uint]models.AdminUser)}
	for _, user := range users {
		stub.users[user.ID] = user
		if user.ID > stub.nextID {
			stub.nextID = user.ID
		}
	}
	return stub
}

func (s *adminUserRepoStub) List(_ context.Context) ([]models.AdminUser, error) {
	users := make([]models.AdminUser, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *adminUserRepoStub) GetByID(_ context.Context, id uint) (models.AdminUser, error) {
	user, ok := s.users[id]
	if !ok {
		return models.AdminUser{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *adminUserRepoStub) GetByEmail(_ context.Context, email string) (models.AdminUser, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.AdminUser{}, gorm.ErrRecordNotFound
}

func (s *adminUserRepoStub) Create(_ context.Context, user *models.AdminUser) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s *adminUserRepoStub) UpdateRole(_ context.Context, id uint, role string) (models.AdminUser, error) {
	user, ok := s.users[id]
	if !ok {
		return models.AdminUser{}, gorm.ErrRecordNotFound
	}
	user.Role = role
	s.users[id] = user
	return user, nil
}

func (s *adminUserRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.users, id)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func rootAccount(t *testing.T) models.AdminUser {
	return models.AdminUser{
		ID:           1,
		Email:        "root@club.test",
		Name:         "Root",
		Role:         models.RoleRoot,
		PasswordHash: hashPassword(t, "correct horse battery"),
	}
}

func TestLoginIssuesSignedToken(t *testing.T) {
	repo := newAdminUserRepoStub(rootAccount(t))
	audit := &auditRecorderStub{}
	svc := NewAuthService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, "test-secret", testLogger())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "root@club.test",
		Password: "correct horse battery",
	}, AuditMetadata{IPAddress: "203.0.113.7"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, models.RoleRoot, resp.User.Role)

	token, err := jwt.Parse(resp.Token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "1", claims["sub"])
	require.Equal(t, "root@club.test", claims["email"])
	require.Equal(t, models.RoleRoot, claims["role"])

	require.Len(t, audit.byAction(models.ActionAdminLogin), 1)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	repo := newAdminUserRepoStub(rootAccount(t))
	svc := NewAuthService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, "test-secret", testLogger())

	_, unknownErr := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@club.test",
		Password: "whatever",
	}, AuditMetadata{})
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, wrongErr := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "root@club.test",
		Password: "wrong password",
	}, AuditMetadata{})
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestLogoutRecordsAuditEntry(t *testing.T) {
	audit := &auditRecorderStub{}
	svc := NewAuthService(newAdminUserRepoStub(), validator.New(validator.WithRequiredStructEnabled()), audit, "test-secret", testLogger())

	svc.Logout(context.Background(), AuditActor{ID: "1", Email: "root@club.test"}, AuditMetadata{IPAddress: "203.0.113.7"})

	entries := audit.byAction(models.ActionAdminLogout)
	require.Len(t, entries, 1)
	require.Equal(t, "203.0.113.7", entries[0].Metadata.IPAddress)
}
