package routes

import (
	"net/http"

	albumsapi "portfolio-app/internal/api/albums"
	authapi "portfolio-app/internal/api/auth"
	bookingsapi "portfolio-app/internal/api/bookings"
	linksapi "portfolio-app/internal/api/links"
	profileapi "portfolio-app/internal/api/profile"
	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/app/http/middleware"
	"portfolio-app/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// Deps carries the handler sets, constructed once in main.
type Deps struct {
	Auth     *authapi.Handler
	Profile  *profileapi.Handler
	Albums   *albumsapi.Handler
	Links    *linksapi.Handler
	Bookings *bookingsapi.Handler

	// nil disables guest throttling
	GuestLimiter *ratelimit.FixedWindowLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Fallbacks keep the response envelope even off the routing table.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Not found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	// Public
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.GET("/auth/google", d.Auth.GoogleStart)
	api.GET("/auth/google/callback", d.Auth.GoogleCallback)

	api.GET("/albums", d.Albums.List)
	api.GET("/profiles/:username", d.Profile.GetPublic)

	// Guest path: authorized by the booking's email, throttled per IP
	guest := api.Group("/")
	guest.Use(middleware.GuestRateLimit(d.GuestLimiter))
	guest.POST("/bookings/guest", d.Bookings.CreateAsGuest)
	guest.GET("/bookings/:id/guest-messages", d.Bookings.ListGuestMessages)
	guest.POST("/bookings/:id/guest-messages", d.Bookings.CreateGuestMessage)

	// Authenticated
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/auth/me", d.Auth.Me)
	auth.POST("/auth/change-password", d.Auth.ChangePassword)

	auth.GET("/profile", d.Profile.Get)
	auth.PUT("/profile", d.Profile.Save)

	auth.POST("/albums", d.Albums.Create)
	auth.POST("/albums/:id/images", d.Albums.UploadImage)
	auth.PUT("/albums/:id/cover", d.Albums.SetCover)
	auth.DELETE("/albums/:id/images/:imageId", d.Albums.DeleteImage)
	auth.DELETE("/albums/:id", d.Albums.Delete)

	auth.GET("/custom-links", d.Links.List)
	auth.POST("/custom-links", d.Links.Create)
	auth.PUT("/custom-links/:id", d.Links.Update)
	auth.DELETE("/custom-links/:id", d.Links.Delete)

	auth.GET("/bookings", d.Bookings.List)
	auth.POST("/bookings", d.Bookings.Create)
	auth.PUT("/bookings/:id", d.Bookings.Update)
	auth.DELETE("/bookings/:id", d.Bookings.Delete)
	auth.GET("/bookings/:id/messages", d.Bookings.ListMessages)
	auth.POST("/bookings/:id/messages", d.Bookings.CreateMessage)
}
