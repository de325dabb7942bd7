package api

import (
	"net/http"
	"time"

	"studiofit/booking-app/internal/domain" // Needed for RoleMiddleware
	"studiofit/booking-app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	allowedOrigin string,
	authService service.AuthService,
	classService service.ClassService,
	bookingService service.BookingService,
	membershipService service.MembershipService,
) {

	authHandler := NewAuthHandler(authService)
	classHandler := NewClassHandler(classService)
	bookingHandler := NewBookingHandler(bookingService)
	membershipHandler := NewMembershipHandler(membershipService)

	authMiddleware := AuthMiddleware(jwtSecret, authService)

	if allowedOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{allowedOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Public routes: registration and login per role ---
	router.POST("/users", authHandler.RegisterMember)
	router.POST("/user/login", authHandler.LoginMember)
	router.POST("/trainers", authHandler.RegisterTrainer)
	router.POST("/trainer/login", authHandler.LoginTrainer)
	router.POST("/admins", authHandler.RegisterAdmin)
	router.POST("/admin/login", authHandler.LoginAdmin)

	// --- Protected routes ---
	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// Any authenticated user
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings/mine", bookingHandler.GetMyBookings)
		protected.GET("/classes/schedule", classHandler.GetSchedule)
		protected.POST("/payments/monthly", membershipHandler.CreateMonthlyPayment)
		protected.GET("/payments/mine", membershipHandler.GetMyPayments)

		// Ownership check (admin or self) lives in the handler
		protected.POST("/users/:id/reset-password", authHandler.ResetPassword)

		// Trainer or admin
		staff := RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin)
		protected.GET("/trainers/:id/members", staff, bookingHandler.GetTrainerMembers)
		protected.PUT("/trainers/:id/availability", staff, membershipHandler.UpdateAvailability)
		protected.POST("/classes", staff, classHandler.CreateClass)
		protected.PUT("/classes/:id", staff, classHandler.UpdateClass)
		protected.DELETE("/classes/:id", staff, classHandler.DeleteClass)

		// Admin only
		adminOnly := RoleMiddleware(domain.RoleAdmin)
		protected.PUT("/memberships/:id", adminOnly, membershipHandler.UpdateMembership)
		protected.PUT("/users/:id/block", adminOnly, membershipHandler.BlockUser)
	}
}
