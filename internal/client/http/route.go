package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers client routes. All routes require authentication;
// non-staff users may only touch their own profile, which the handler
// enforces.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/clients")
	group.Use(authMiddleware)

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/me", h.Me)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)

	staff := group.Group("")
	staff.Use(staffMiddleware)
	{
		staff.DELETE("/:id", h.Delete)
	}
}
