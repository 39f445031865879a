package routes

import (
	"church-community-api/controllers"
	"church-community-api/middleware"
	"church-community-api/models"
	"church-community-api/utils"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Managed uploads are served straight from disk
	router.Static(utils.PublicUploadPrefix, utils.UploadPath())

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Church Community API is running",
				})
			})

			// Public intake
			public.POST("/testimonies", controllers.CreateTestimony)
			public.POST("/decisions", controllers.CreateDecision)
			public.POST("/community-needs", controllers.CreateCommunityNeed)

			// Public testimony wall
			public.GET("/published-testimonies", controllers.GetPublishedTestimonies)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Image upload for attaching to a testimony
			protected.POST("/uploads/image", controllers.UploadImage)

			// Staff back-office (pastoral team and admin)
			staff := protected.Group("/staff")
			staff.Use(middleware.RequireRole(models.RolePastoralTeam, models.RoleAdmin))
			{
				// Testimony review queue
				testimonies := staff.Group("/testimonies")
				{
					testimonies.GET("", controllers.ListTestimonies)
					testimonies.POST("/:id/image", controllers.ReplaceTestimonyImage)

					// Only admin can approve/reject
					testimonies.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), controllers.ApproveTestimony)
					testimonies.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin), controllers.RejectTestimony)
				}

				// Pastoral follow-up queue
				decisions := staff.Group("/decisions")
				{
					decisions.GET("", controllers.ListDecisions)
					decisions.POST("/:id/contact-log", controllers.AddDecisionContactLog)
					decisions.POST("/:id/status", controllers.UpdateDecisionStatus)
				}

				// Community needs board
				needs := staff.Group("/community-needs")
				{
					needs.GET("", controllers.ListCommunityNeeds)
					needs.POST("/:id/status", controllers.UpdateCommunityNeedStatus)
				}
			}
		}
	}
}
