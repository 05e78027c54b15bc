package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"hackmate.backend/internal/interfaces/http/handlers"
	"hackmate.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	hackathonHandler    *handlers.HackathonHandler
	teamHandler         *handlers.TeamHandler
	membershipHandler   *handlers.MembershipHandler
	notificationHandler *handlers.NotificationHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Hackathon directory (public read, protected write)
		hackathons := v1.Group("/hackathons")
		{
			hackathons.GET("", d.hackathonHandler.ListHackathons)
			hackathons.GET("/:id", d.hackathonHandler.GetHackathon)
			hackathons.POST("", d.authMiddleware, d.hackathonHandler.CreateHackathon)
		}

		// Team routes (protected)
		teams := v1.Group("/teams")
		teams.Use(d.authMiddleware)
		{
			teams.POST("", middleware.IdempotencyMiddleware(), d.teamHandler.CreateTeam)
			teams.GET("", d.teamHandler.ListAvailableTeams)
			teams.GET("/mine", d.teamHandler.ListMyTeams)
			teams.POST("/join", middleware.IdempotencyMiddleware(), d.membershipHandler.JoinWithCode)
			teams.GET("/:id", d.teamHandler.GetTeam)
			teams.PATCH("/:id", d.teamHandler.UpdateTeam)
			teams.POST("/:id/invite-code", d.teamHandler.RegenerateInviteCode)
			teams.POST("/:id/requests", middleware.IdempotencyMiddleware(), d.membershipHandler.RequestToJoin)
			teams.GET("/:id/requests", d.membershipHandler.ListPendingRequests)
			teams.DELETE("/:id/members/me", d.membershipHandler.LeaveTeam)
		}

		// Join request resolution (protected, leader only)
		requests := v1.Group("/requests")
		requests.Use(d.authMiddleware)
		{
			requests.POST("/:id/accept", d.membershipHandler.AcceptRequest)
			requests.POST("/:id/reject", d.membershipHandler.RejectRequest)
		}

		// Notification feed (protected)
		notifications := v1.Group("/notifications")
		notifications.Use(d.authMiddleware)
		{
			notifications.GET("", d.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", d.notificationHandler.CountUnread)
			notifications.POST("/:id/read", d.notificationHandler.MarkRead)
			notifications.POST("/read-all", d.notificationHandler.MarkAllRead)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID, Idempotency-Key")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "hackmate-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
