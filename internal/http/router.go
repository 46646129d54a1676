package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intconfig "hoponhub/internal/config"
	h "hoponhub/internal/http/handlers"
	"hoponhub/internal/http/middleware"
)

func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), middleware.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "Not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)
		api.POST("/init-db", hd.InitDB)

		api.GET("/buses/search", hd.SearchBuses)
		api.GET("/seats/:route_id", hd.GetRouteSeats)

		api.POST("/bookings", hd.CreateBooking)

		booking := api.Group("/booking")
		booking.GET("/:id", hd.GetBooking)
		booking.GET("/:id/e-ticket", hd.GetBookingETicketPDF)
		booking.GET("/:id/invoice", hd.GetBookingInvoicePDF)

		api.POST("/payment", hd.ProcessPayment)

		api.GET("/tickets/verify", hd.VerifyTicket)
	}

	return r
}
