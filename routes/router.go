package routes

import (
	"html/template"

	"spotfix-admin/config"
	"spotfix-admin/controllers"
	"spotfix-admin/middlewares"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the engine. counter may be nil to disable rate
// limiting; an empty JWT secret disables the operator gate.
func NewRouter(cfg *config.Config, h *controllers.Handlers, tmpl *template.Template, counter middlewares.Counter) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	var auth, apiAuth gin.HandlerFunc = passThrough, passThrough
	if cfg.JWTSecret != "" {
		auth = middlewares.AuthMiddleware(cfg.JWTSecret)
		apiAuth = middlewares.APIAuthMiddleware(cfg.JWTSecret)
	}
	limiter := middlewares.StatusUpdateRateLimiter(counter, cfg.RateLimitPrefix, cfg.StatusUpdateLimit, cfg.StatusUpdateWin)

	r.GET("/ping", controllers.Ping)
	IssueRoutes(r, h, auth, limiter)
	APIRoutes(r, h, apiAuth, cfg.CORSAllowedOrigins)

	return r
}

func passThrough(c *gin.Context) { c.Next() }
