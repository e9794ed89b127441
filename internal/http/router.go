package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "charter/internal/config"
	h "charter/internal/http/handlers"
	"charter/internal/http/middleware"
	"charter/internal/utils"
)

func NewRouter(env intconfig.Env, hd h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": stdhttp.StatusNotFound,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Catalog
		api.GET("/destinations/", hd.ListDestinations)
		api.GET("/destinations/:id/", hd.GetDestination)
		api.GET("/vehicles/", hd.ListVehicles)
		api.GET("/trips/", hd.TripByDestination)
		api.GET("/trips/:booking_id/", hd.TripByBooking)
		api.GET("/prices/", hd.ListPrices)
		api.GET("/prices/:id/", hd.GetPrice)
		api.GET("/testimonials/", hd.ListTestimonials)

		// Bookings & contact
		api.POST("/bookings/", hd.CreateBooking)
		api.POST("/contact-us/", hd.CreateContact)

		// Newsletter
		api.POST("/newsletter/", hd.Subscribe)
		api.GET("/newsletter/verify/:token/", hd.VerifySubscription)
		api.POST("/newsletter/unsubscribe/", hd.Unsubscribe)
		api.GET("/newsletter/unsubscribe/", hd.Unsubscribe)

		admin := api.Group("/admin")
		mountAdmin(admin, hd)
	}

	return r
}

func mountAdmin(g *gin.RouterGroup, hd h.Handler) {
	bookings := g.Group("/bookings")
	bookings.GET("", hd.AdminListBookings)
	bookings.GET("/:id", hd.AdminGetBooking)
	bookings.PUT("/:id/status", hd.AdminSetBookingStatus)
	bookings.POST("/:id/advance", hd.AdminAdvanceBooking)
	bookings.GET("/:id/slip", hd.AdminBookingSlip)

	g.GET("/customers", hd.AdminListCustomers)
	g.GET("/messages", hd.AdminListMessages)

	g.POST("/destinations", hd.AdminCreateDestination)
	g.PUT("/destinations/:id", hd.AdminUpdateDestination)

	g.POST("/vehicles", hd.AdminCreateVehicle)
	g.PUT("/vehicles/:id", hd.AdminUpdateVehicle)

	g.PUT("/prices", hd.AdminUpsertPrice)
	g.DELETE("/prices/:id", hd.AdminDeletePrice)

	g.POST("/testimonials", hd.AdminCreateTestimonial)

	g.POST("/newsletter/sync", hd.AdminSyncNewsletter)
}
