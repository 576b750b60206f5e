package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelease/hostelease/internal/app/controllers"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/metrics"
	"github.com/hostelease/hostelease/internal/middleware"
)

// SetupRouter configures all application routes.
//
// Reads are open to every authenticated user; creates are open to every
// authenticated user for the student-facing entities; status transitions,
// deletes and the room/fee/announcement/menu write surface are staff only
// (WARDEN or ADMIN).
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Liveness and scrape endpoints sit outside the API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", ctrls.Auth.Signup)
		auth.POST("/login", ctrls.Auth.Login)
		auth.POST("/refresh", ctrls.Auth.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authRoutes := authenticated.Group("/auth")
	{
		authRoutes.GET("/me", ctrls.Auth.GetMe)
		authRoutes.GET("/users", authMiddleware.RequireStaff(), ctrls.Auth.ListUsers)
	}

	rooms := authenticated.Group("/rooms")
	{
		rooms.GET("", ctrls.Rooms.GetAllRooms)
		rooms.GET("/:id", ctrls.Rooms.GetRoom)

		roomsStaff := rooms.Group("")
		roomsStaff.Use(authMiddleware.RequireStaff())
		{
			roomsStaff.POST("", ctrls.Rooms.CreateRoom)
			roomsStaff.POST("/assign", ctrls.Rooms.AssignRoom)
			roomsStaff.POST("/vacate", ctrls.Rooms.VacateRoom)
			roomsStaff.PUT("/:id", ctrls.Rooms.UpdateRoom)
			roomsStaff.DELETE("/:id", ctrls.Rooms.DeleteRoom)
		}
	}

	complaints := authenticated.Group("/complaints")
	{
		complaints.GET("", ctrls.Complaints.GetAllComplaints)
		complaints.GET("/:id", ctrls.Complaints.GetComplaint)
		complaints.POST("", ctrls.Complaints.CreateComplaint)

		complaintsStaff := complaints.Group("")
		complaintsStaff.Use(authMiddleware.RequireStaff())
		{
			complaintsStaff.PUT("/:id/status", ctrls.Complaints.UpdateStatus)
			complaintsStaff.DELETE("/:id", ctrls.Complaints.DeleteComplaint)
		}
	}

	visitors := authenticated.Group("/visitors")
	{
		visitors.GET("", ctrls.Visitors.GetAllVisitors)
		visitors.GET("/:id", ctrls.Visitors.GetVisitor)
		visitors.POST("", ctrls.Visitors.CreateVisitor)

		visitorsStaff := visitors.Group("")
		visitorsStaff.Use(authMiddleware.RequireStaff())
		{
			visitorsStaff.PUT("/:id/exit", ctrls.Visitors.MarkExit)
			visitorsStaff.DELETE("/:id", ctrls.Visitors.DeleteVisitor)
		}
	}

	leaves := authenticated.Group("/leaves")
	{
		leaves.GET("", ctrls.Leaves.GetAllLeaves)
		leaves.GET("/:id", ctrls.Leaves.GetLeave)
		leaves.POST("", ctrls.Leaves.CreateLeave)

		leavesStaff := leaves.Group("")
		leavesStaff.Use(authMiddleware.RequireStaff())
		{
			leavesStaff.PUT("/:id/approve", ctrls.Leaves.ApproveLeave)
			leavesStaff.PUT("/:id/reject", ctrls.Leaves.RejectLeave)
			leavesStaff.DELETE("/:id", ctrls.Leaves.DeleteLeave)
		}
	}

	messMenu := authenticated.Group("/mess-menu")
	{
		messMenu.GET("", ctrls.MessMenus.ListMessMenus)

		messMenuStaff := messMenu.Group("")
		messMenuStaff.Use(authMiddleware.RequireStaff())
		{
			messMenuStaff.POST("", ctrls.MessMenus.UpsertMessMenu)
			messMenuStaff.DELETE("/:id", ctrls.MessMenus.DeleteMessMenu)
		}
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", ctrls.Announcements.GetAllAnnouncements)
		announcements.GET("/:id", ctrls.Announcements.GetAnnouncement)

		announcementsStaff := announcements.Group("")
		announcementsStaff.Use(authMiddleware.RequireStaff())
		{
			announcementsStaff.POST("", ctrls.Announcements.CreateAnnouncement)
			announcementsStaff.PUT("/:id", ctrls.Announcements.UpdateAnnouncement)
			announcementsStaff.DELETE("/:id", ctrls.Announcements.DeleteAnnouncement)
		}
	}

	feePayments := authenticated.Group("/fee-payments")
	{
		feePayments.GET("", ctrls.FeePayments.GetAllFeePayments)
		feePayments.GET("/stats", ctrls.FeePayments.GetStats)
		feePayments.GET("/:id", ctrls.FeePayments.GetFeePayment)

		feePaymentsStaff := feePayments.Group("")
		feePaymentsStaff.Use(authMiddleware.RequireStaff())
		{
			feePaymentsStaff.POST("", ctrls.FeePayments.CreateFeePayment)
			feePaymentsStaff.PUT("/:id", ctrls.FeePayments.UpdateFeePayment)
			feePaymentsStaff.PUT("/:id/pay", ctrls.FeePayments.PayFee)
			feePaymentsStaff.PUT("/:id/status", ctrls.FeePayments.UpdateStatus)
			feePaymentsStaff.DELETE("/:id", ctrls.FeePayments.DeleteFeePayment)
		}
	}
}
