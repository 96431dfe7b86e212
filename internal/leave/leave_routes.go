package leave

import (
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RateLimitByEmployee(rate.Limit(1), 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Submit)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.PATCH("/:id/department-review", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.DepartmentReview)
		leaves.PATCH("/:id/admin-decision", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.AdminDecision)
	}
}
