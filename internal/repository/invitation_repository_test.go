package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func setupInvitationDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.WorkspaceInvitation{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestInvitationRepository_Accept_FlipsPendingStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInvitationRepository(db)

	inv := &models.WorkspaceInvitation{
		ID:          7,
		WorkspaceID: 3,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
	}

	mock.ExpectBegin()
	// The status flip is conditional on the row still being pending
	mock.ExpectExec("UPDATE `workspace_invitations` SET").
		WithArgs(models.InvitationAccepted, sqlmock.AnyArg(), inv.ID, models.InvitationPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `workspace_members`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Accept(inv, 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_Accept_AlreadyResolved(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewInvitationRepository(db)

	inv := &models.WorkspaceInvitation{
		ID:          7,
		WorkspaceID: 3,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
	}

	mock.ExpectBegin()
	// No pending row matched: a concurrent accept got there first
	mock.ExpectExec("UPDATE `workspace_invitations` SET").
		WithArgs(models.InvitationAccepted, sqlmock.AnyArg(), inv.ID, models.InvitationPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(inv, 42)
	require.ErrorIs(t, err, ErrInvitationNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_Accept_MembershipSurvivesRepeatJoin(t *testing.T) {
	db := setupInvitationDB(t)
	repo := NewInvitationRepository(db)

	// The user is already a member with the owner role
	require.NoError(t, db.Create(&models.WorkspaceMember{
		WorkspaceID: 1,
		UserID:      5,
		Role:        models.RoleOwner,
		JoinedAt:    time.Now(),
	}).Error)

	inv := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "owner@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   2,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(inv).Error)

	require.NoError(t, repo.Accept(inv, 5))

	// Accepting does not downgrade the existing membership
	var member models.WorkspaceMember
	require.NoError(t, db.Where("workspace_id = ? AND user_id = ?", 1, 5).First(&member).Error)
	require.Equal(t, models.RoleOwner, member.Role)

	var count int64
	require.NoError(t, db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", 1, 5).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestInvitationRepository_ListPendingByEmail_ExcludesExpired(t *testing.T) {
	db := setupInvitationDB(t)
	repo := NewInvitationRepository(db)

	now := time.Now()

	live := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   2,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, db.Create(live).Error)

	// Deadline passed but the stored status was never updated
	stale := &models.WorkspaceInvitation{
		WorkspaceID: 2,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   2,
		ExpiresAt:   now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(stale).Error)

	invitations, err := repo.ListPendingByEmail("invitee@example.com", now)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	require.Equal(t, live.ID, invitations[0].ID)
}

func TestInvitationRepository_UpsertPending(t *testing.T) {
	db := setupInvitationDB(t)
	repo := NewInvitationRepository(db)

	first := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   2,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.UpsertPending(first))

	second := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "invitee@example.com",
		Role:        models.RoleOwner,
		Status:      models.InvitationPending,
		InvitedBy:   3,
		ExpiresAt:   time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, repo.UpsertPending(second))

	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.WorkspaceInvitation{}).
		Where("workspace_id = ? AND email = ?", 1, "invitee@example.com").
		Count(&count).Error)
	require.EqualValues(t, 1, count)

	var stored models.WorkspaceInvitation
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Equal(t, models.RoleOwner, stored.Role)
	require.EqualValues(t, 3, stored.InvitedBy)
}

func TestInvitationRepository_UpsertPending_AcceptedDoesNotBlock(t *testing.T) {
	db := setupInvitationDB(t)
	repo := NewInvitationRepository(db)

	accepted := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationAccepted,
		InvitedBy:   2,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(accepted).Error)

	fresh := &models.WorkspaceInvitation{
		WorkspaceID: 1,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   2,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.UpsertPending(fresh))

	// A resolved invitation is history; a new pending one sits beside it
	require.NotEqual(t, accepted.ID, fresh.ID)
}
