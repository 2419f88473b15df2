package api

import (
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the Gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	memberService service.MemberService,
	trainerService service.TrainerService,
	planService service.PlanService,
	subscriptionService service.SubscriptionService,
	paymentService service.PaymentService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	memberHandler := NewMemberHandler(memberService)
	trainerHandler := NewTrainerHandler(trainerService)
	planHandler := NewPlanHandler(planService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService, memberService)
	paymentHandler := NewPaymentHandler(paymentService, memberService)
	scheduleHandler := NewScheduleHandler(scheduleService, trainerService, memberService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Self-Service (any authenticated user) ---
		protected.GET("/me", userHandler.Me)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.POST("/me/avatar/upload-url", userHandler.RequestAvatarUploadURL)
		protected.POST("/me/avatar/confirm", userHandler.ConfirmAvatar)
		protected.GET("/me/avatar/download-url", userHandler.AvatarDownloadURL)

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.List)
			planGroup.GET("/tiers", planHandler.Tiers)
			planGroup.POST("", RequireCapability(domain.ActionManagePlans), planHandler.Create)
			planGroup.PUT("/:id", RequireCapability(domain.ActionManagePlans), planHandler.Update)
			planGroup.DELETE("/:id", RequireCapability(domain.ActionManagePlans), planHandler.Delete)
		}

		// --- Members (administration) ---
		memberGroup := protected.Group("/members")
		{
			memberGroup.GET("", RequireCapability(domain.ActionViewMembers), memberHandler.List)
			memberGroup.GET("/:id", RequireCapability(domain.ActionViewMembers), memberHandler.Get)
			memberGroup.PUT("/:id", RequireCapability(domain.ActionManageMembers), memberHandler.Update)
			memberGroup.DELETE("/:id", RequireCapability(domain.ActionManageMembers), memberHandler.Delete)
			memberGroup.GET("/:id/subscriptions", RequireCapability(domain.ActionManageSubscriptions), subscriptionHandler.ListByMember)
			memberGroup.GET("/:id/payments", RequireCapability(domain.ActionViewAllPayments), paymentHandler.ListByMember)
		}

		// --- Member self-service profile ---
		memberMe := protected.Group("/members/me")
		memberMe.Use(RequireCapability(domain.ActionViewOwnData))
		{
			memberMe.GET("", memberHandler.GetMine)
			memberMe.PUT("", memberHandler.UpdateMine)
		}

		// --- Trainers ---
		trainerGroup := protected.Group("/trainers")
		{
			trainerGroup.GET("", RequireCapability(domain.ActionViewMembers), trainerHandler.List)
			trainerGroup.GET("/:id", RequireCapability(domain.ActionViewMembers), trainerHandler.Get)
			trainerGroup.POST("", RequireCapability(domain.ActionManageTrainers), trainerHandler.Create)
			trainerGroup.POST("/:id/members", RequireCapability(domain.ActionManageRoster), trainerHandler.AssignMember)
			trainerGroup.DELETE("/members/:memberId", RequireCapability(domain.ActionManageRoster), trainerHandler.UnassignMember)
		}

		// --- Trainer self-service ---
		trainerMe := protected.Group("/trainers/me")
		trainerMe.Use(RequireCapability(domain.ActionManageSchedules))
		{
			trainerMe.GET("/members", trainerHandler.MyRoster)
			trainerMe.GET("/schedules", scheduleHandler.ListForTrainer)
		}

		// --- Subscriptions (administration) ---
		subGroup := protected.Group("/subscriptions")
		subGroup.Use(RequireCapability(domain.ActionManageSubscriptions))
		{
			subGroup.GET("", subscriptionHandler.List)
			subGroup.POST("/purchase", subscriptionHandler.Purchase)
			subGroup.POST("/:id/pause", subscriptionHandler.Pause)
			subGroup.POST("/:id/resume", subscriptionHandler.Resume)
			subGroup.POST("/:id/cancel", subscriptionHandler.Cancel)
			subGroup.DELETE("/:id", subscriptionHandler.Delete)
			subGroup.POST("/sweep", subscriptionHandler.Sweep)
		}

		// --- Member subscription self-service ---
		subMe := protected.Group("/subscriptions/me")
		subMe.Use(RequireCapability(domain.ActionPurchaseOwn))
		{
			subMe.GET("", subscriptionHandler.ListMine)
			subMe.GET("/current", subscriptionHandler.CurrentMine)
			subMe.POST("/purchase", subscriptionHandler.PurchaseMe)
			subMe.POST("/:id/pause", subscriptionHandler.PauseMine)
			subMe.POST("/:id/resume", subscriptionHandler.ResumeMine)
			subMe.POST("/:id/cancel", subscriptionHandler.CancelMine)
		}

		// --- Payments ---
		paymentGroup := protected.Group("/payments")
		{
			paymentGroup.GET("", RequireCapability(domain.ActionViewAllPayments), paymentHandler.List)
			paymentGroup.GET("/me", RequireCapability(domain.ActionViewOwnData), paymentHandler.ListMine)
		}

		// --- Schedules ---
		scheduleGroup := protected.Group("/schedules")
		{
			scheduleGroup.POST("", RequireCapability(domain.ActionManageSchedules), scheduleHandler.Create)
			scheduleGroup.PUT("/:id", RequireCapability(domain.ActionManageSchedules), scheduleHandler.Update)
			scheduleGroup.DELETE("/:id", RequireCapability(domain.ActionManageSchedules), scheduleHandler.Delete)
			scheduleGroup.GET("/me", RequireCapability(domain.ActionViewOwnData), scheduleHandler.ListMine)
		}
	}
}
