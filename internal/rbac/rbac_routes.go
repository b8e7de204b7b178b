package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guards []gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(guards...)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.MyPermissions)
	}
}
