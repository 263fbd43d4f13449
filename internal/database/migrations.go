package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Account indexes for filtering and sorting
		{"accounts", "idx_accounts_workspace_id", "workspace_id"},
		{"accounts", "idx_accounts_created_at", "created_at"},

		// Workspace member indexes
		{"workspace_members", "idx_ws_members_workspace_id", "workspace_id"},
		{"workspace_members", "idx_ws_members_user_id", "user_id"},

		// Invitation lookup by recipient and liveness window
		{"workspace_invitations", "idx_ws_invitations_email_status", "email, status"},
		{"workspace_invitations", "idx_ws_invitations_expires_at", "expires_at"},

		// Account assignment indexes
		{"account_assignments", "idx_assignments_account_id", "account_id"},
		{"account_assignments", "idx_assignments_user_id", "user_id"},

		// Reminder scan index: the due detector filters on these
		{"reminders", "idx_reminders_completed_date", "completed, date"},
		{"reminders", "idx_reminders_workspace_id", "workspace_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
