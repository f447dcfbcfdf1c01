package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/ratelimit"
)

type settingsRepoStub struct {
	settings models.SiteSettings
	err      error
	saves    int
	failN    int
}

func (s *settingsRepoStub) Get(_ context.Context) (models.SiteSettings, error) {
	return s.settings, s.err
}

func (s *settingsRepoStub) Save(_ context.Context, settings *models.SiteSettings) error {
	s.saves++
	if s.failN > 0 {
		s.failN--
		return context.DeadlineExceeded
	}
	s.settings = *settings
	return nil
}

func validApplication() dto.ApplicationRequest {
	return dto.ApplicationRequest{
		Name:       "Jamie Rivera",
		Email:      "Jamie.Rivera@student.test",
		Major:      "Informatics",
		Year:       "2",
		Motivation: "I want to learn backend development with the club.",
	}
}

func newApplicationService(repo *applicationRepoStub, settings *settingsRepoStub, limiter *ratelimit.Limiter) ApplicationService {
	return NewApplicationService(repo, settings, limiter, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func TestSubmitPersistsSanitizedApplication(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: true}}
	svc := newApplicationService(repo, settings, nil)

	req := validApplication()
	req.Motivation = "<script>alert(1)</script>I want to learn backend development."

	resp, err := svc.Submit(context.Background(), req, "203.0.113.7")
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, resp.Status)
	require.Len(t, repo.applications, 1)

	stored := repo.applications[resp.ID]
	require.Equal(t, "jamie.rivera@student.test", stored.Email)
	require.NotContains(t, stored.Motivation, "<script>")
	require.NotEmpty(t, stored.Checksum)
}

func TestSubmitHoneypotFlaggedAsSpam(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: true}}
	svc := newApplicationService(repo, settings, nil)

	req := validApplication()
	req.Honeypot = "https://spam.example"

	_, err := svc.Submit(context.Background(), req, "203.0.113.7")
	require.ErrorIs(t, err, ErrApplicationSpam)
	require.Empty(t, repo.applications)
}

func TestSubmitRejectsWhenClosed(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: false}}
	svc := newApplicationService(repo, settings, nil)

	_, err := svc.Submit(context.Background(), validApplication(), "203.0.113.7")
	require.ErrorIs(t, err, ErrApplicationsClosed)
}

func TestSubmitRejectsDuplicateChecksum(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: true}}
	svc := newApplicationService(repo, settings, nil)

	_, err := svc.Submit(context.Background(), validApplication(), "203.0.113.7")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validApplication(), "198.51.100.4")
	require.ErrorIs(t, err, ErrApplicationDuplicate)
	require.Len(t, repo.applications, 1)
}

func TestSubmitRateLimitsByClientKey(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: true}}
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 2, time.Hour)
	svc := newApplicationService(repo, settings, limiter)

	for i := 0; i < 2; i++ {
		req := validApplication()
		req.Motivation = req.Motivation + " attempt " + string(rune('a'+i))
		_, err := svc.Submit(context.Background(), req, "203.0.113.7")
		require.NoError(t, err)
	}

	_, err := svc.Submit(context.Background(), validApplication(), "203.0.113.7")
	require.ErrorIs(t, err, ErrApplicationRateLimited)

	_, err = svc.Submit(context.Background(), validApplication(), "198.51.100.4")
	require.NoError(t, err)
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	repo := newApplicationRepoStub()
	settings := &settingsRepoStub{settings: models.SiteSettings{ApplicationsOpen: true}}
	svc := newApplicationService(repo, settings, nil)

	req := validApplication()
	req.Motivation = "short"

	_, err := svc.Submit(context.Background(), req, "203.0.113.7")
	require.Error(t, err)
	require.Empty(t, repo.applications)
}
