package routes

import (
	"spotfix-admin/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the dashboard pages. auth guards every page; limiter
// additionally guards the status form.
func IssueRoutes(r *gin.Engine, h *controllers.Handlers, auth, limiter gin.HandlerFunc) {
	pages := r.Group("/", auth)
	{
		pages.GET("/", h.ListIssues)
		pages.GET("/issue/:id", h.ShowIssue)
		pages.POST("/issue/:id", limiter, h.UpdateStatus)
	}
}
