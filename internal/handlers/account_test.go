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
	"github.com/jueviolegrace13/account-management/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type accountTestEnv struct {
	db             *gorm.DB
	handler        *AccountHandler
	accountService *services.AccountService
}

func setupAccountTestEnv(t *testing.T) accountTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Account{},
		&models.AccountAssignment{},
		&models.Note{},
		&models.Reminder{},
		&models.VaultEntry{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	accountRepo := repository.NewAccountRepository(db)
	wsRepo := repository.NewWorkspaceRepository(db)
	accountService := services.NewAccountService(accountRepo, wsRepo)
	handler := NewAccountHandler(accountService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return accountTestEnv{
		db:             db,
		handler:        handler,
		accountService: accountService,
	}
}

func accountTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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

func createAccountTestWorkspace(t *testing.T, db *gorm.DB, owner *models.User) *models.Workspace {
	t.Helper()

	ws := &models.Workspace{Name: "Agency", Timezone: "UTC", OwnerID: owner.ID}
	require.NoError(t, db.Create(ws).Error)
	require.NoError(t, db.Create(&models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      owner.ID,
		Role:        models.RoleOwner,
		JoinedAt:    time.Now(),
	}).Error)
	return ws
}

func addAssistant(t *testing.T, db *gorm.DB, ws *models.Workspace, user *models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      user.ID,
		Role:        models.RoleAssistant,
		JoinedAt:    time.Now(),
	}).Error)
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)

	payload := map[string]string{
		"name":     "Client Instagram",
		"username": "client.insta",
		"website":  "https://instagram.com",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := accountTestContext(http.MethodPost, "/api/workspaces/1/accounts", body, owner.ID)
	c.Set(constants.ContextKeyWorkspace, *ws)

	env.handler.CreateAccount(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Client Instagram", response.Name)
	require.Equal(t, ws.ID, response.WorkspaceID)
}

func TestAccountHandler_ListWorkspaceAccounts_AssistantSeesOnlyAssigned(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	assigned := &models.Account{WorkspaceID: ws.ID, Name: "Assigned", Username: "assigned"}
	hidden := &models.Account{WorkspaceID: ws.ID, Name: "Hidden", Username: "hidden"}
	require.NoError(t, env.db.Create(assigned).Error)
	require.NoError(t, env.db.Create(hidden).Error)

	require.NoError(t, env.accountService.AssignUsers(services.AssignUsersInput{
		AccountID:   assigned.ID,
		WorkspaceID: ws.ID,
		UserIDs:     []uint64{assistant.ID},
	}))

	c, w := accountTestContext(http.MethodGet, "/api/workspaces/1/accounts", nil, assistant.ID)
	c.Set(constants.ContextKeyWorkspace, *ws)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      assistant.ID,
		Role:        models.RoleAssistant,
	})

	env.handler.ListWorkspaceAccounts(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	accounts := response["accounts"]
	require.Len(t, accounts, 1)
	require.Equal(t, "Assigned", accounts[0].Name)
}

func TestAccountHandler_ListWorkspaceAccounts_OwnerSeesAll(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)

	require.NoError(t, env.db.Create(&models.Account{WorkspaceID: ws.ID, Name: "One", Username: "one"}).Error)
	require.NoError(t, env.db.Create(&models.Account{WorkspaceID: ws.ID, Name: "Two", Username: "two"}).Error)

	c, w := accountTestContext(http.MethodGet, "/api/workspaces/1/accounts", nil, owner.ID)
	c.Set(constants.ContextKeyWorkspace, *ws)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      owner.ID,
		Role:        models.RoleOwner,
	})

	env.handler.ListWorkspaceAccounts(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["accounts"], 2)
}

func TestAccountHandler_AssignUsers_RejectsNonMember(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	outsider := createTestUser(t, env.db, "outsider@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	payload := map[string][]uint64{"user_ids": {outsider.ID}}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := accountTestContext(http.MethodPost, "/api/accounts/1/assign", body, owner.ID)
	c.Set(constants.ContextKeyAccount, *account)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      owner.ID,
		Role:        models.RoleOwner,
	})

	env.handler.AssignUsers(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_UpdateAccount_AssistantNotAssigned(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	payload := map[string]string{"name": "Renamed"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := accountTestContext(http.MethodPatch, "/api/accounts/1", body, assistant.ID)
	c.Set(constants.ContextKeyAccount, *account)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      assistant.ID,
		Role:        models.RoleAssistant,
	})

	env.handler.UpdateAccount(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccountHandler_UpdateAccount_AssignedAssistant(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	require.NoError(t, env.accountService.AssignUsers(services.AssignUsersInput{
		AccountID:   account.ID,
		WorkspaceID: ws.ID,
		UserIDs:     []uint64{assistant.ID},
	}))

	payload := map[string]string{"name": "Renamed"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := accountTestContext(http.MethodPatch, "/api/accounts/1", body, assistant.ID)
	c.Set(constants.ContextKeyAccount, *account)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      assistant.ID,
		Role:        models.RoleAssistant,
	})

	env.handler.UpdateAccount(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Renamed", response.Name)
}

func TestAccountHandler_DeleteAccount_AssistantForbidden(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	c, w := accountTestContext(http.MethodDelete, "/api/accounts/1", nil, assistant.ID)
	c.Set(constants.ContextKeyAccount, *account)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      assistant.ID,
		Role:        models.RoleAssistant,
	})

	env.handler.DeleteAccount(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccountHandler_ListAssignedAccounts(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	require.NoError(t, env.accountService.AssignUsers(services.AssignUsersInput{
		AccountID:   account.ID,
		WorkspaceID: ws.ID,
		UserIDs:     []uint64{assistant.ID},
	}))

	c, w := accountTestContext(http.MethodGet, "/api/accounts/assigned", nil, assistant.ID)

	env.handler.ListAssignedAccounts(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Accounts   []dto.AccountDTO         `json:"accounts"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Accounts, 1)
	require.Equal(t, "Client", response.Accounts[0].Name)
	require.EqualValues(t, 1, response.Pagination.Total)
}

func TestAccountHandler_UnassignUsers(t *testing.T) {
	env := setupAccountTestEnv(t)

	owner := createTestUser(t, env.db, "owner@example.com")
	assistant := createTestUser(t, env.db, "assistant@example.com")
	ws := createAccountTestWorkspace(t, env.db, owner)
	addAssistant(t, env.db, ws, assistant)

	account := &models.Account{WorkspaceID: ws.ID, Name: "Client", Username: "client"}
	require.NoError(t, env.db.Create(account).Error)

	require.NoError(t, env.accountService.AssignUsers(services.AssignUsersInput{
		AccountID:   account.ID,
		WorkspaceID: ws.ID,
		UserIDs:     []uint64{assistant.ID},
	}))

	payload := map[string][]uint64{"user_ids": {assistant.ID}}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := accountTestContext(http.MethodPost, "/api/accounts/1/unassign", body, owner.ID)
	c.Set(constants.ContextKeyAccount, *account)
	c.Set(constants.ContextKeyMember, models.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      owner.ID,
		Role:        models.RoleOwner,
	})

	env.handler.UnassignUsers(c)

	require.Equal(t, http.StatusOK, w.Code)

	accounts, total, err := env.accountService.ListAssignedAccounts(assistant.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Empty(t, accounts)
	require.Zero(t, total)
}
