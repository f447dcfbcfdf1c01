package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestSettingsGetDefaultsWhenUnset(t *testing.T) {
	repo := &settingsRepoStub{err: gorm.ErrRecordNotFound}
	svc := NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, "", testLogger())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.True(t, resp.ApplicationsOpen)
}

func TestSettingsGetServesDeploymentContactDefault(t *testing.T) {
	repo := &settingsRepoStub{err: gorm.ErrRecordNotFound}
	svc := NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, "hello@club.test", testLogger())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello@club.test", resp.ContactEmail)

	repo = &settingsRepoStub{settings: models.SiteSettings{ClubName: "ITC", ContactEmail: "board@club.test", ApplicationsOpen: true}}
	svc = NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, "hello@club.test", testLogger())

	resp, err = svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "board@club.test", resp.ContactEmail)
}

func TestSettingsUpdateRecordsChangedFields(t *testing.T) {
	repo := &settingsRepoStub{settings: models.SiteSettings{ClubName: "ITC", ApplicationsOpen: true}}
	audit := &auditRecorderStub{}
	svc := NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, "", testLogger())

	resp, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{
		ClubName:         strPtr("Campus ITC"),
		ApplicationsOpen: boolPtr(false),
	}, AuditActor{Email: "root@club.test"})
	require.NoError(t, err)
	require.Equal(t, "Campus ITC", resp.ClubName)
	require.False(t, resp.ApplicationsOpen)
	require.Equal(t, 1, repo.saves)

	entries := audit.byAction(models.ActionSettingsUpdate)
	require.Len(t, entries, 1)
	details, ok := entries[0].Details.(map[string]interface{})
	require.True(t, ok)
	require.ElementsMatch(t, []string{"club_name", "applications_open"}, details["changed_fields"])
}

func TestSettingsUpdateNoChangesSkipsSave(t *testing.T) {
	repo := &settingsRepoStub{settings: models.SiteSettings{ClubName: "ITC", ApplicationsOpen: true}}
	audit := &auditRecorderStub{}
	svc := NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, "", testLogger())

	resp, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{
		ClubName: strPtr("ITC"),
	}, AuditActor{Email: "root@club.test"})
	require.NoError(t, err)
	require.Equal(t, "ITC", resp.ClubName)
	require.Zero(t, repo.saves)
	require.Empty(t, audit.entries)
}

func TestSettingsUpdateRejectsBadLink(t *testing.T) {
	repo := &settingsRepoStub{}
	svc := NewSettingsService(repo, validator.New(validator.WithRequiredStructEnabled()), &auditRecorderStub{}, "", testLogger())

	_, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{
		MessengerGroupLink: strPtr("not-a-url"),
	}, AuditActor{})
	require.Error(t, err)
	require.Zero(t, repo.saves)
}

func TestWithRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestWithRetryReturnsLastError(t *testing.T) {
	boom := errors.New("persistent")
	err := withRetry(context.Background(), 2, time.Millisecond, func() error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetry(ctx, 3, time.Minute, func() error { return errors.New("transient") })
	require.ErrorIs(t, err, context.Canceled)
}
