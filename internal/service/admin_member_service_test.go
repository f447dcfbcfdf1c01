package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

type memberRepoStub struct {
	members map[uint]models.Member
	failIDs map[uint]bool
}

func newMemberRepoStub(ids ...uint) *memberRepoStub {
	stub := &memberRepoStub{
		members: make(map[uint]models.Member),
		failIDs: make(map[uint]bool),
	}
	for _, id := range ids {
		stub.members[id] = models.Member{
			ID:       id,
			Name:     "Member",
			Email:    "member@club.test",
			Status:   models.MemberStatusActive,
			JoinedAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return stub
}

func (s *memberRepoStub) List(_ context.Context, _ repository.MemberFilter) ([]models.Member, int64, error) {
	items := make([]models.Member, 0, len(s.members))
	for _, member := range s.members {
		items = append(items, member)
	}
	return items, int64(len(items)), nil
}

func (s *memberRepoStub) ListActive(_ context.Context, _ int) ([]models.Member, error) {
	items := make([]models.Member, 0)
	for _, member := range s.members {
		if member.Status == models.MemberStatusActive {
			items = append(items, member)
		}
	}
	return items, nil
}

func (s *memberRepoStub) GetByID(_ context.Context, id uint) (models.Member, error) {
	member, ok := s.members[id]
	if !ok {
		return models.Member{}, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (s *memberRepoStub) Create(_ context.Context, member *models.Member) error {
	member.ID = uint(len(s.members) + 1)
	s.members[member.ID] = *member
	return nil
}

func (s *memberRepoStub) Update(_ context.Context, id uint, updates map[string]interface{}) (models.Member, error) {
	if s.failIDs[id] {
		return models.Member{}, errors.New("write refused")
	}
	member, ok := s.members[id]
	if !ok {
		return models.Member{}, gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		member.Name = name
	}
	if email, ok := updates["email"].(string); ok {
		member.Email = email
	}
	if status, ok := updates["status"].(string); ok {
		member.Status = status
	}
	if notes, ok := updates["notes"].(string); ok {
		member.Notes = notes
	}
	s.members[id] = member
	return member, nil
}

func (s *memberRepoStub) Delete(_ context.Context, id uint) error {
	if s.failIDs[id] {
		return errors.New("write refused")
	}
	if _, ok := s.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.members, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestAdminMemberGetRecordsView(t *testing.T) {
	repo := newMemberRepoStub(1)
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	_, err := svc.Get(context.Background(), 1, AuditActor{Email: "root@club.test"})
	require.NoError(t, err)
	require.Len(t, audit.byAction(models.ActionMemberView), 1)
}

func TestAdminMemberUpdateRecordsStatusChange(t *testing.T) {
	repo := newMemberRepoStub(1)
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	resp, err := svc.Update(context.Background(), 1, dto.MemberUpdateRequest{Status: strPtr("alumni")}, AuditActor{Email: "root@club.test"})
	require.NoError(t, err)
	require.Equal(t, "alumni", resp.Status)

	statusEntries := audit.byAction(models.ActionMemberStatusChange)
	require.Len(t, statusEntries, 1)
	details, ok := statusEntries[0].Details.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, models.MemberStatusActive, details["old_status"])
	require.Equal(t, "alumni", details["new_status"])

	require.Len(t, audit.byAction(models.ActionMemberEdit), 1)
}

func TestAdminMemberUpdateWithoutChangesSkipsWrite(t *testing.T) {
	repo := newMemberRepoStub(1)
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	resp, err := svc.Update(context.Background(), 1, dto.MemberUpdateRequest{}, AuditActor{})
	require.NoError(t, err)
	require.Equal(t, models.MemberStatusActive, resp.Status)
	require.Empty(t, audit.entries)
}

func TestAdminMemberBulkStatusPartialFailure(t *testing.T) {
	repo := newMemberRepoStub(1, 2, 3)
	repo.failIDs[2] = true
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	result := svc.BulkUpdateStatus(context.Background(), []uint{1, 2, 3}, "inactive", AuditActor{Email: "root@club.test"})
	require.Equal(t, 2, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, "2 members updated successfully. 1 failed.", result.Message)

	bulkEntries := audit.byAction(models.ActionBulkUpdate)
	require.Len(t, bulkEntries, 1)
	require.Equal(t, "bulk_3", bulkEntries[0].TargetID)
}

func TestAdminMemberBulkDelete(t *testing.T) {
	repo := newMemberRepoStub(1, 2)
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	result := svc.BulkDelete(context.Background(), []uint{1, 2, 9}, AuditActor{Email: "root@club.test"})
	require.Equal(t, 2, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, "2 members deleted successfully. 1 failed.", result.Message)
	require.Empty(t, repo.members)
	require.Len(t, audit.byAction(models.ActionBulkDelete), 1)
}

func TestAdminMemberExportCSV(t *testing.T) {
	repo := newMemberRepoStub(1)
	audit := &auditRecorderStub{}
	svc := NewAdminMemberService(repo, validator.New(validator.WithRequiredStructEnabled()), audit, testLogger())

	payload, err := svc.ExportCSV(context.Background(), AuditActor{Email: "root@club.test"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,name,email,major,year,status,joined_at", lines[0])
	require.Contains(t, lines[1], "member@club.test")

	require.Len(t, audit.byAction(models.ActionBulkExport), 1)
}
