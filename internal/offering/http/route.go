package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers offering routes. Reads are public; writes require
// a staff token.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/offerings")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	staff := group.Group("")
	staff.Use(authMiddleware, staffMiddleware)
	{
		staff.POST("", h.Create)
		staff.PATCH("/:id", h.Update)
		staff.DELETE("/:id", h.Delete)
	}
}
