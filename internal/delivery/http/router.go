package http

import (
	"github.com/gin-gonic/gin"

	"github.com/heartlinkapp/heartlink-backend/internal/delivery/http/handler"
	"github.com/heartlinkapp/heartlink-backend/internal/delivery/http/middleware"
	"github.com/heartlinkapp/heartlink-backend/internal/delivery/ws"
	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	matchHandler        *handler.MatchHandler
	likeHandler         *handler.LikeHandler
	messageHandler      *handler.MessageHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
	wsHandler           *ws.Handler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	likeHandler *handler.LikeHandler,
	messageHandler *handler.MessageHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		matchHandler:        matchHandler,
		likeHandler:         likeHandler,
		messageHandler:      messageHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		wsHandler:           wsHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Realtime events
	router.GET("/ws", r.wsHandler.Handle)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authHandler.Logout)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.POST("/forgot-password", r.authHandler.ForgotPassword)
			auth.POST("/reset-password", r.authHandler.ResetPassword)
			auth.GET("/check-email", r.authHandler.CheckEmail)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.POST("", r.profileHandler.Create)
				profile.GET("/me", r.profileHandler.GetMe)
				profile.PUT("/me", r.profileHandler.Update)
				profile.DELETE("/me", r.profileHandler.DeleteAccount)
				profile.GET("/stats", r.profileHandler.Stats)
				profile.POST("/photos", r.profileHandler.UploadPhoto)
				profile.DELETE("/photos/:photo_id", r.profileHandler.DeletePhoto)
				profile.PUT("/photos/:photo_id/primary", r.profileHandler.SetPrimaryPhoto)
				profile.GET("/:user_id", r.profileHandler.GetByUserID)
			}

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.GetMatches)
				matches.POST("/filter", r.matchHandler.Filter)
				matches.GET("/compatibility/:user_id", r.matchHandler.Compatibility)
				matches.GET("/preferences", r.matchHandler.GetPreferences)
				matches.PUT("/preferences", r.matchHandler.SavePreferences)
				matches.DELETE("/preferences", r.matchHandler.DeletePreferences)
			}

			// Like routes
			likes := protected.Group("/likes")
			{
				likes.POST("", r.likeHandler.Send)
				likes.GET("/sent", r.likeHandler.Sent)
				likes.GET("/received", r.likeHandler.Received)
				likes.GET("/mutual", r.likeHandler.Mutual)
				likes.GET("/stats", r.likeHandler.Stats)
				likes.GET("/check/:user_id", r.likeHandler.Check)
				likes.DELETE("/:user_id", r.likeHandler.Unlike)
			}

			// Message routes
			messages := protected.Group("/messages")
			{
				messages.POST("", r.messageHandler.Send)
				messages.GET("/conversations", r.messageHandler.Conversations)
				messages.GET("/conversations/:conversation_id", r.messageHandler.Messages)
				messages.PUT("/conversations/:conversation_id/read", r.messageHandler.MarkRead)
				messages.GET("/unread", r.messageHandler.Unread)
				messages.GET("/search", r.messageHandler.Search)
				messages.POST("/block/:user_id", r.messageHandler.Block)
				messages.DELETE("/block/:user_id", r.messageHandler.Unblock)
				messages.DELETE("/:message_id", r.messageHandler.Delete)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.PUT("/read-all", r.notificationHandler.MarkAllRead)
				notifications.PUT("/:notification_id/read", r.notificationHandler.MarkRead)
			}

			// Report routes (user-facing)
			protected.POST("/reports", r.adminHandler.ReportUser)
		}

		// Admin routes
		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/login", r.adminHandler.Login)

			moderation := adminGroup.Group("")
			moderation.Use(r.authMiddleware.RequireAdmin())
			{
				moderation.GET("/users", r.adminHandler.ListUsers)
				moderation.GET("/users/:user_id", r.adminHandler.GetUser)
				moderation.POST("/users/:user_id/ban", r.adminHandler.BanUser)
				moderation.POST("/users/:user_id/unban", r.adminHandler.UnbanUser)
				// Deleting an account outright is reserved for super admins.
				moderation.DELETE("/users/:user_id",
					r.authMiddleware.RequireRole(domain.AdminRoleSuper), r.adminHandler.DeleteUser)
				moderation.GET("/reports", r.adminHandler.ListReports)
				moderation.PUT("/reports/:report_id", r.adminHandler.ReviewReport)
				moderation.GET("/photos/unverified", r.adminHandler.UnverifiedPhotos)
				moderation.PUT("/photos/:photo_id/verify", r.adminHandler.VerifyPhoto)
			}
		}
	}

	return router
}
