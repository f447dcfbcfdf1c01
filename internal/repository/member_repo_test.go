package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

func setupMemberTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name, email, status string) models.Member {
	t.Helper()
	member := models.Member{
		Name:     name,
		Email:    email,
		Status:   status,
		JoinedAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&member).Error)
	return member
}

func TestMemberRepositoryListFiltersSearchAndStatus(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)

	seedMember(t, db, "Alice Varga", "alice.varga@filters.test", models.MemberStatusActive)
	seedMember(t, db, "Bob Kiss", "bob.kiss@filters.test", models.MemberStatusAlumni)

	found, total, err := repo.List(context.Background(), MemberFilter{Search: "varga@filters"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	require.Equal(t, "Alice Varga", found[0].Name)

	alumni, total, err := repo.List(context.Background(), MemberFilter{Search: "filters.test", Status: "ALUMNI"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Bob Kiss", alumni[0].Name)
}

func TestMemberRepositoryListPaginates(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)

	seedMember(t, db, "Page One", "one@paging.test", models.MemberStatusActive)
	seedMember(t, db, "Page Two", "two@paging.test", models.MemberStatusActive)
	seedMember(t, db, "Page Three", "three@paging.test", models.MemberStatusActive)

	page, total, err := repo.List(context.Background(), MemberFilter{Search: "paging.test", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, page, 1)
}

func TestMemberRepositoryUpdateAppliesFields(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)

	member := seedMember(t, db, "Update Target", "target@updates.test", models.MemberStatusActive)

	updated, err := repo.Update(context.Background(), member.ID, map[string]interface{}{
		"status": models.MemberStatusInactive,
		"notes":  "on leave this semester",
	})
	require.NoError(t, err)
	require.Equal(t, models.MemberStatusInactive, updated.Status)
	require.Equal(t, "on leave this semester", updated.Notes)
}

func TestMemberRepositoryUpdateUnknownID(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)

	_, err := repo.Update(context.Background(), 999999, map[string]interface{}{"status": models.MemberStatusActive})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemberRepositoryDeleteIsSoft(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)

	member := seedMember(t, db, "Soft Delete", "softdelete@deletes.test", models.MemberStatusActive)
	require.NoError(t, repo.Delete(context.Background(), member.ID))

	_, err := repo.GetByID(context.Background(), member.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var raw models.Member
	require.NoError(t, db.Unscoped().First(&raw, member.ID).Error)
	require.True(t, raw.DeletedAt.Valid)
}
