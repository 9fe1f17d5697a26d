package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers specialist routes. Reads are public; writes require
// a staff token.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/specialists")

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/services", h.ListOfferings)
	group.GET("/:id/schedule", h.ListSchedule)
	group.GET("/:id/available-slots", h.AvailableSlots)
	group.GET("/:id/photo", h.Photo)

	staff := group.Group("")
	staff.Use(authMiddleware, staffMiddleware)
	{
		staff.POST("", h.Create)
		staff.PATCH("/:id", h.Update)
		staff.DELETE("/:id", h.Delete)
		staff.PUT("/:id/photo", h.SetPhoto)
	}
}
