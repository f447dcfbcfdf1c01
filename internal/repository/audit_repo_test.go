package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditRecord{}))
	return db
}

func auditRecord(email, action string, recordedAt time.Time) models.AuditRecord {
	return models.AuditRecord{
		AdminID:    "1",
		AdminEmail: email,
		Action:     action,
		Target:     "member",
		TargetID:   "7",
		Details:    datatypes.JSONMap{"old_status": "active", "new_status": "alumni"},
		IPAddress:  "203.0.113.7",
		RecordedAt: recordedAt,
	}
}

func TestAuditRepositoryRoundTrip(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewAuditRepository(db)

	record := auditRecord("roundtrip@club.test", models.ActionMemberStatusChange, time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), &record))
	require.NotZero(t, record.ID)

	records, err := repo.ListRecent(context.Background(), 10, "roundtrip@club.test")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.ActionMemberStatusChange, records[0].Action)
	require.Equal(t, "7", records[0].TargetID)
	require.Equal(t, "alumni", records[0].Details["new_status"])
}

func TestAuditRepositoryListRecentOrdersNewestFirst(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewAuditRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	for i, action := range []string{models.ActionMemberView, models.ActionMemberEdit, models.ActionMemberDelete} {
		record := auditRecord("ordering@club.test", action, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(context.Background(), &record))
	}

	records, err := repo.ListRecent(context.Background(), 10, "ordering@club.test")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, models.ActionMemberDelete, records[0].Action)
	require.Equal(t, models.ActionMemberView, records[2].Action)

	limited, err := repo.ListRecent(context.Background(), 2, "ordering@club.test")
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, models.ActionMemberDelete, limited[0].Action)
}

func TestAuditRepositoryFiltersByAdminEmail(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewAuditRepository(db)

	now := time.Now().UTC()
	alice := auditRecord("filter-alice@club.test", models.ActionMemberView, now)
	bob := auditRecord("filter-bob@club.test", models.ActionMemberEdit, now)
	require.NoError(t, repo.Create(context.Background(), &alice))
	require.NoError(t, repo.Create(context.Background(), &bob))

	records, err := repo.ListRecent(context.Background(), 10, "filter-alice@club.test")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.ActionMemberView, records[0].Action)
}
