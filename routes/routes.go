package routes

import (
	"github.com/bookify/reservations-api/handlers"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.GET("/auth/verify-email", handlers.VerifyEmail)

		// Staff onboarding
		public.GET("/invitations/accept", handlers.ShowInvitation)
		public.POST("/invitations/accept", handlers.AcceptInvitation)

		// Browse (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.GET("/post-login", handlers.PostLogin)
		auth.POST("/auth/logout", handlers.Logout)
	}

	// ── Role dashboards ────────────────────────────────────────────
	dash := r.Group("/api/dashboard")
	dash.Use(middleware.AuthRequired())
	{
		dash.GET("/customer", middleware.RoleRequired(models.RoleCustomer), handlers.CustomerDashboard)
		dash.GET("/owner", middleware.RoleRequired(models.RoleOwner), handlers.OwnerDashboard)
		dash.GET("/staff", middleware.RoleRequired(models.RoleStaff), handlers.StaffDashboard)
		dash.GET("/support", middleware.RoleRequired(models.RoleSupport), handlers.SupportDashboard)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/reservations", handlers.CreateReservation)
		customer.GET("/reservations", handlers.GetMyReservations)
		customer.GET("/reservations/:id", handlers.GetReservationDetail)
		customer.POST("/reservations/:id/cancel", handlers.CancelReservation)
	}

	// ── Owner routes ───────────────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		// Restaurant management
		owner.POST("/restaurant", handlers.CreateRestaurant)
		owner.GET("/restaurant", handlers.GetMyRestaurant)
		owner.PUT("/restaurant", handlers.UpdateRestaurant)

		// Staff invitations
		owner.POST("/invitations", handlers.CreateInvitation)

		// Reservation management
		owner.GET("/reservations", handlers.GetRestaurantReservations)
		owner.POST("/reservations/:id/confirm", handlers.ConfirmReservation)
		owner.POST("/reservations/:id/decline", handlers.DeclineReservation)
	}

	// ── Support routes ─────────────────────────────────────────────
	support := r.Group("/api/support")
	support.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleSupport))
	{
		support.GET("/users", handlers.SupportListUsers)
		support.GET("/restaurants", handlers.SupportListRestaurants)
		support.GET("/reservations", handlers.SupportListReservations)
	}
}
