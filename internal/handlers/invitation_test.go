package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/constants"
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/dto"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"github.com/jueviolegrace13/account-management/internal/services"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type invitationTestEnv struct {
	db          *gorm.DB
	handler     *InvitationHandler
	wsService   *services.WorkspaceService
	authService *services.AuthService
}

func setupInvitationTestEnv(t *testing.T) invitationTestEnv {
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

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	wsRepo := repository.NewWorkspaceRepository(db)
	invRepo := repository.NewInvitationRepository(db)
	authService := services.NewAuthService(userRepo)
	wsService := services.NewWorkspaceService(wsRepo, invRepo, nil, "http://localhost:5173", zap.NewNop())
	handler := NewInvitationHandler(wsService, authService, "http://localhost:5173")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return invitationTestEnv{
		db:          db,
		handler:     handler,
		wsService:   wsService,
		authService: authService,
	}
}

func invitationTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func TestInvitationHandler_CreateInvitation(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	payload := map[string]string{"email": "Invitee@Example.com", "role": "assistant"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodPost, "/api/workspaces/1/invitations", body, owner.ID)
	c.Set(constants.ContextKeyWorkspace, *ws)

	env.handler.CreateInvitation(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "invitee@example.com", response.Email, "email is normalized to lowercase")
	require.Equal(t, models.RoleAssistant, response.Role)
	require.Equal(t, models.InvitationPending, response.Status)
	require.Contains(t, response.AcceptLink, "/invitations/")
	require.True(t, response.ExpiresAt.After(time.Now().Add(6*24*time.Hour)), "expiry is about a week out")
}

func TestInvitationHandler_CreateInvitation_ReplacesPending(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	first, err := env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
	})
	require.NoError(t, err)

	second, err := env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       "invitee@example.com",
		Role:        models.RoleOwner,
	})
	require.NoError(t, err)

	// Re-inviting the same address updates the live invitation in place
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, models.RoleOwner, second.Role)

	var count int64
	require.NoError(t, env.db.Model(&models.WorkspaceInvitation{}).
		Where("workspace_id = ? AND email = ? AND status = ?", ws.ID, "invitee@example.com", models.InvitationPending).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestInvitationHandler_ListPendingInvitations(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	invitee, err := env.authService.Signup(services.SignupInput{
		Email:    "invitee@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	_, err = env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       invitee.Email,
		Role:        models.RoleAssistant,
	})
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodGet, "/api/invitations", nil, invitee.ID)

	env.handler.ListPendingInvitations(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	invitations := response["invitations"]
	require.Len(t, invitations, 1)
	require.Equal(t, invitee.Email, invitations[0].Email)
	require.NotNil(t, invitations[0].Workspace)
	require.Equal(t, "Agency", invitations[0].Workspace.Name)
}

func TestInvitationHandler_AcceptInvitation(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	invitee, err := env.authService.Signup(services.SignupInput{
		Email:    "invitee@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	inv, err := env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       invitee.Email,
		Role:        models.RoleAssistant,
	})
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodPost, "/api/invitations/1/accept", nil, invitee.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.AcceptInvitation(c)

	require.Equal(t, http.StatusOK, w.Code)

	var member models.WorkspaceMember
	require.NoError(t, env.db.Where("workspace_id = ? AND user_id = ?", ws.ID, invitee.ID).First(&member).Error)
	require.Equal(t, models.RoleAssistant, member.Role)

	var stored models.WorkspaceInvitation
	require.NoError(t, env.db.First(&stored, inv.ID).Error)
	require.Equal(t, models.InvitationAccepted, stored.Status)
}

func TestInvitationHandler_AcceptInvitation_Twice(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	invitee, err := env.authService.Signup(services.SignupInput{
		Email:    "invitee@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	_, err = env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       invitee.Email,
		Role:        models.RoleAssistant,
	})
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodPost, "/api/invitations/1/accept", nil, invitee.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	env.handler.AcceptInvitation(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = invitationTestContext(http.MethodPost, "/api/invitations/1/accept", nil, invitee.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	env.handler.AcceptInvitation(c)
	require.Equal(t, http.StatusConflict, w.Code)

	// Still exactly one membership
	var count int64
	require.NoError(t, env.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", ws.ID, invitee.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestInvitationHandler_AcceptInvitation_Expired(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	invitee, err := env.authService.Signup(services.SignupInput{
		Email:    "invitee@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	// Stored status is still pending; only the deadline has passed
	inv := &models.WorkspaceInvitation{
		WorkspaceID: ws.ID,
		Email:       invitee.Email,
		Role:        models.RoleAssistant,
		Status:      models.InvitationPending,
		InvitedBy:   owner.ID,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, env.db.Create(inv).Error)

	c, w := invitationTestContext(http.MethodPost, "/api/invitations/1/accept", nil, invitee.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.AcceptInvitation(c)

	require.Equal(t, http.StatusGone, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", ws.ID, invitee.ID).
		Count(&count).Error)
	require.Zero(t, count)
}

func TestInvitationHandler_AcceptInvitation_EmailMismatch(t *testing.T) {
	env := setupInvitationTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	intruder, err := env.authService.Signup(services.SignupInput{
		Email:    "someone-else@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	ws, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    "Agency",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)

	_, err = env.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     owner.ID,
		Email:       "invitee@example.com",
		Role:        models.RoleAssistant,
	})
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodPost, "/api/invitations/1/accept", nil, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.AcceptInvitation(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvitationHandler_AcceptInvitation_NotFound(t *testing.T) {
	env := setupInvitationTestEnv(t)

	invitee, err := env.authService.Signup(services.SignupInput{
		Email:    "invitee@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	c, w := invitationTestContext(http.MethodPost, "/api/invitations/999/accept", nil, invitee.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	env.handler.AcceptInvitation(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
