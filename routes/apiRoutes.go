package routes

import (
	"net/http"
	"time"

	"spotfix-admin/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// APIRoutes sets up the read-only JSON endpoints. Each route also answers
// OPTIONS so the CORS middleware sees browser preflights; it aborts them
// before auth runs.
func APIRoutes(r *gin.Engine, h *controllers.Handlers, auth gin.HandlerFunc, allowedOrigins []string) {
	api := r.Group("/api", corsMiddleware(allowedOrigins), auth)
	{
		api.GET("/summary", h.Summary)
		api.OPTIONS("/summary", preflight)
	}
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
