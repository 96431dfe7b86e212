package role

import (
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	heads := r.Group("/department-heads")
	heads.Use(middleware.AuthMiddleware())
	{
		heads.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), handler.ListAssignments)
		heads.POST("/sync", middleware.RBACAuthorize(rbacService, "role", "manage"), handler.SyncFromTitles)
	}
}
