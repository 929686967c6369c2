package api

import (
	"log"
	stdhttp "net/http"

	intconfig "caravanas/internal/config"
	h "caravanas/internal/http/handlers"
	"caravanas/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.RegisterUser)

		// Página pública de presença (link por token, sem login)
		presence := api.Group("/presence")
		presence.GET("/:token", h.GetPresence)
		presence.POST("/:token/confirm", h.ConfirmPresence)

		// Painel administrativo
		admin := api.Group("")
		admin.Use(middleware.RequireAuth([]byte(env.JWTSecret)))

		// Trips
		trips := admin.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/:id", h.GetTrip)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", middleware.RequireRoles("admin", "owner"), h.DeleteTrip)
		trips.GET("/:id/passengers", h.GetTripPassengers)
		trips.POST("/:id/passengers", h.RegisterPassenger)
		trips.GET("/:id/tours", h.GetTripTours)
		trips.POST("/:id/tours", h.CreateTour)
		trips.GET("/:id/finance", h.GetTripFinance)
		trips.GET("/:id/report", h.GetTripFinanceReport)

		// Passengers
		passengers := admin.Group("/passengers")
		passengers.GET("/:id", h.GetPassenger)
		passengers.DELETE("/:id", middleware.RequireRoles("admin", "owner"), h.DeletePassenger)
		passengers.GET("/:id/breakdown", h.GetPassengerBreakdown)
		passengers.PUT("/:id/fare", h.UpdatePassengerFare)
		passengers.POST("/:id/recompute", h.RecomputePassengerStatus)
		passengers.POST("/:id/mark-paid", h.MarkPassengerAsPaid)
		passengers.GET("/:id/payments", h.GetPassengerPayments)
		passengers.POST("/:id/payments", h.RegisterPayment)
		passengers.GET("/:id/installments", h.GetPassengerInstallments)
		passengers.POST("/:id/installments", h.AddInstallment)
		passengers.GET("/:id/tours", h.GetPassengerTours)
		passengers.GET("/:id/contact", h.GetOutreachHistory)
		passengers.POST("/:id/contact", h.RegisterOutreach)

		// Payments
		payments := admin.Group("/payments")
		payments.DELETE("/:id", h.DeletePayment)
		payments.GET("/:id/receipt", h.GetPaymentReceipt)

		// Installments (ledger antigo)
		installments := admin.Group("/installments")
		installments.DELETE("/:id", h.DeleteInstallment)

		// Tours catalog
		tours := admin.Group("/tours")
		tours.DELETE("/:id", h.DeleteTour)
	}

	return r
}
