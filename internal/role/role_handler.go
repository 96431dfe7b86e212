package role

import (
	"net/http"

	"go-leaveflow/internal/shared/apperror"
	"go-leaveflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	resolver Resolver
	logger   *zap.Logger
}

func NewHandler(resolver Resolver, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("role.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.handler")
	}
	return &Handler{resolver: resolver, logger: l}
}

type assignmentResponse struct {
	DepartmentID string `json:"department_id"`
	EmployeeID   string `json:"employee_id"`
}

func (h *Handler) ListAssignments(c *gin.Context) {
	assignments, err := h.resolver.ListAssignments(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp := make([]assignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = assignmentResponse{
			DepartmentID: a.DepartmentID.String(),
			EmployeeID:   a.EmployeeID.String(),
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SyncFromTitles(c *gin.Context) {
	synced, err := h.resolver.SyncFromTitles(c.Request.Context())
	if err != nil {
		h.logger.Error("title sync failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"synced": synced}, nil)
}
