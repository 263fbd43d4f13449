package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/constants"
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/models"
)

// RequireAccountAccess checks if the user has access to an account.
// User must be a member of the account's workspace.
func RequireAccountAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountIDStr := c.Param("id")
		accountID, err := strconv.ParseUint(accountIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid account ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var account models.Account
		if err := database.GetDB().First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
			c.Abort()
			return
		}

		// Check if user is a member of the account's workspace
		var member models.WorkspaceMember
		err = database.GetDB().
			Where("workspace_id = ? AND user_id = ?", account.WorkspaceID, userID).
			First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking account existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAccount, account)
		c.Set(constants.ContextKeyMember, member)
		c.Next()
	}
}

// GetAccount retrieves the account loaded by RequireAccountAccess
func GetAccount(c *gin.Context) (models.Account, bool) {
	accountInterface, exists := c.Get(constants.ContextKeyAccount)
	if !exists {
		return models.Account{}, false
	}
	account, ok := accountInterface.(models.Account)
	return account, ok
}
