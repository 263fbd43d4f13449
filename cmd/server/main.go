package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/config"
	"github.com/jueviolegrace13/account-management/internal/constants"
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/handlers"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/reminder"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"github.com/jueviolegrace13/account-management/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db := database.GetDB()

	// The index bootstrap inspects pg_indexes and only applies on Postgres.
	if cfg.DBDriver == "postgres" {
		if err := database.MigrateDatabase(db); err != nil {
			log.Fatalf("Failed to run index migrations: %v", err)
		}
	}
	userRepo := repository.NewUserRepository(db)
	wsRepo := repository.NewWorkspaceRepository(db)
	invRepo := repository.NewInvitationRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	vaultRepo := repository.NewVaultRepository(db)

	// Invitation email delivery is optional; without SMTP_HOST the
	// service skips sending and invitations are accepted via the API
	// alone.
	var mailer services.InvitationMailer
	if m := services.NewSMTPMailer(cfg); m != nil {
		mailer = m
	}

	authService := services.NewAuthService(userRepo)
	wsService := services.NewWorkspaceService(wsRepo, invRepo, mailer, cfg.AppOrigin, logger)
	accountService := services.NewAccountService(accountRepo, wsRepo)
	noteService := services.NewNoteService(noteRepo)
	reminderService := services.NewReminderService(reminderRepo)
	vaultService := services.NewVaultService(vaultRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	wsHandler := handlers.NewWorkspaceHandler(wsService)
	invHandler := handlers.NewInvitationHandler(wsService, authService, cfg.AppOrigin)
	accountHandler := handlers.NewAccountHandler(accountService)
	noteHandler := handlers.NewNoteHandler(noteService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	vaultHandler := handlers.NewVaultHandler(vaultService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Account Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.POST("", wsHandler.CreateWorkspace)
			workspaces.GET("", wsHandler.ListWorkspaces)
			workspaces.GET("/:id", middleware.RequireWorkspaceAccess(), wsHandler.GetWorkspace)
			workspaces.PUT("/:id", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), wsHandler.UpdateWorkspace)
			workspaces.DELETE("/:id", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), wsHandler.DeleteWorkspace)
			workspaces.DELETE("/:id/members/:user_id", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), wsHandler.RemoveMember)
			workspaces.POST("/:id/invitations", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), invHandler.CreateInvitation)
			workspaces.POST("/:id/accounts", middleware.RequireWorkspaceAccess(), accountHandler.CreateAccount)
			workspaces.GET("/:id/accounts", middleware.RequireWorkspaceAccess(), accountHandler.ListWorkspaceAccounts)
		}

		// Invitation routes (protected)
		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth())
		{
			invitations.GET("", invHandler.ListPendingInvitations)
			invitations.POST("/:id/accept", invHandler.AcceptInvitation)
		}

		// Account routes (protected)
		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAuth())
		{
			accounts.GET("/assigned", accountHandler.ListAssignedAccounts)
			accounts.GET("/:id", middleware.RequireAccountAccess(), accountHandler.GetAccount)
			accounts.PATCH("/:id", middleware.RequireAccountAccess(), accountHandler.UpdateAccount)
			accounts.DELETE("/:id", middleware.RequireAccountAccess(), accountHandler.DeleteAccount)
			accounts.POST("/:id/assign", middleware.RequireAccountAccess(), accountHandler.AssignUsers)
			accounts.POST("/:id/unassign", middleware.RequireAccountAccess(), accountHandler.UnassignUsers)
			accounts.POST("/:id/notes", middleware.RequireAccountAccess(), noteHandler.CreateNote)
			accounts.POST("/:id/reminders", middleware.RequireAccountAccess(), reminderHandler.CreateReminder)
			accounts.GET("/:id/vault", middleware.RequireAccountAccess(), vaultHandler.ListEntries)
			accounts.POST("/:id/vault", middleware.RequireAccountAccess(), vaultHandler.AddEntry)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(middleware.RequireAuth())
		{
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(middleware.RequireAuth())
		{
			reminders.GET("/upcoming", reminderHandler.UpcomingReminders)
			reminders.PATCH("/:id", reminderHandler.UpdateReminder)
			reminders.POST("/:id/complete", reminderHandler.SetCompleted)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
		}
	}

	// Background due-reminder detection
	detector := reminder.NewDetector(reminderRepo, &reminder.LogNotifier{Logger: logger}, logger, reminder.Config{})
	detector.Start()
	defer detector.Stop()

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

func newLogger(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
