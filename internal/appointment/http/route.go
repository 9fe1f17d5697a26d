package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers appointment routes. Everything requires
// authentication; the handler scopes reads and transitions to the caller's
// own appointments unless the caller is staff.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/appointments")
	group.Use(authMiddleware)

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/cancel", h.Cancel)
	group.POST("/:id/complete", h.Complete)

	staff := group.Group("")
	staff.Use(staffMiddleware)
	{
		staff.DELETE("/:id", h.Delete)
	}
}
