package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/config"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/handlers"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/middleware"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// RegisterAgentRoutes registers the voice-agent tool endpoints.
func RegisterAgentRoutes(r *gin.Engine, ah *handlers.AgentHandler) {
	api := r.Group("/api/agent")
	{
		api.POST("/session", ah.StartSessionHandler)
		api.DELETE("/session/:sessionID", ah.EndSessionHandler)
		api.GET("/datetime", ah.CurrentDateTimeHandler)

		tools := api.Group("/session/:sessionID/tools")
		tools.POST("/update-booking", ah.UpdateBookingContextHandler)
		tools.POST("/booking-summary", ah.GetBookingSummaryHandler)
		tools.POST("/check-availability", ah.CheckAvailabilityHandler)
		tools.POST("/book-appointment", ah.BookAppointmentHandler)
		tools.POST("/request-help", ah.RequestHelpHandler)
	}
}

// RegisterHelpRoutes registers the supervisor endpoints.
func RegisterHelpRoutes(r *gin.Engine, hh *handlers.HelpRequestHandler) {
	api := r.Group("/api/help-requests")
	api.Use(middleware.AdminAuthMiddleware(config.AppConfig.AdminToken))
	{
		api.GET("/pending", hh.ListPendingHandler)
		api.GET("/:id", hh.GetHandler)
		api.POST("/:id/resolve", hh.ResolveHandler)
	}
}

// RegisterAppointmentRoutes registers admin appointment lookups.
func RegisterAppointmentRoutes(r *gin.Engine, ah *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	api.Use(middleware.AdminAuthMiddleware(config.AppConfig.AdminToken))
	{
		api.GET("/:confirmationNumber", ah.GetByConfirmationHandler)
		api.DELETE("/:confirmationNumber", ah.CancelHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, ah *handlers.AgentHandler, hh *handlers.HelpRequestHandler, apptH *handlers.AppointmentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAgentRoutes(r, ah)
	RegisterHelpRoutes(r, hh)
	RegisterAppointmentRoutes(r, apptH)
}
