package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leaveflow/internal/leave"
	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn           func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn           func(ctx context.Context, filter leave.ListLeavesFilter) ([]leave.LeaveResponse, error)
	getByIDFn          func(ctx context.Context, id string) (leave.LeaveResponse, error)
	departmentReviewFn func(ctx context.Context, actorID, id string, req leave.DepartmentReviewRequest) (leave.LeaveResponse, error)
	adminDecideFn      func(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, filter leave.ListLeavesFilter) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) DepartmentReview(ctx context.Context, actorID, id string, req leave.DepartmentReviewRequest) (leave.LeaveResponse, error) {
	return f.departmentReviewFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) AdminDecide(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error) {
	return f.adminDecideFn(ctx, actor, id, req)
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  2,
					Status:     leave.StatusPending,
					CreatedBy:  aid,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)
		c.Set("role", "EMPLOYEE")

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("missing leave_type fails validation", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on a validation failure")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
		assert.Contains(t, env.Error.Message, "Leave Type")
	})

	t.Run("cap violation surfaces 422", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrCapExceeded
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","leave_type":"ANNUAL","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "POLICY_VIOLATION", env.Error.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("passes filters and paginates", func(t *testing.T) {
		departmentID := uuid.New().String()
		many := make([]leave.LeaveResponse, 15)
		for i := range many {
			many[i] = leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusPending}
		}

		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, filter leave.ListLeavesFilter) ([]leave.LeaveResponse, error) {
				assert.Equal(t, departmentID, filter.DepartmentID)
				assert.Equal(t, leave.StatusPending, filter.Status)
				assert.Equal(t, 2026, filter.Year)
				return many, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet,
			"/leaves?department_id="+departmentID+"&status=PENDING&year=2026&page=2&page_size=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})

	t.Run("service error is mapped", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, filter leave.ListLeavesFilter) ([]leave.LeaveResponse, error) {
				return nil, leaveerrors.ErrInvalidStatusFilter
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves?status=nope", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetById(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestLeaveHandler_DepartmentReview(t *testing.T) {
	t.Run("forwards actor and action", func(t *testing.T) {
		headID := uuid.New().String()
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			departmentReviewFn: func(ctx context.Context, aid, id string, req leave.DepartmentReviewRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, headID, aid)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.ActionApprove, req.Action)
				return leave.LeaveResponse{ID: id, Status: leave.StatusDepartmentApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"action":"approve","comment":"ok"}`
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/department-review", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", headID)
		c.Set("role", string(leave.RoleDepartmentHead))

		h.DepartmentReview(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("scope mismatch returns 403", func(t *testing.T) {
		svc := &fakeLeaveService{
			departmentReviewFn: func(ctx context.Context, aid, id string, req leave.DepartmentReviewRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrDepartmentScopeMismatch
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/department-review", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.DepartmentReview(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("unknown action fails validation", func(t *testing.T) {
		svc := &fakeLeaveService{
			departmentReviewFn: func(ctx context.Context, aid, id string, req leave.DepartmentReviewRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on a validation failure")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/department-review", strings.NewReader(`{"action":"escalate"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.DepartmentReview(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_AdminDecision(t *testing.T) {
	t.Run("forwards the authenticated role", func(t *testing.T) {
		adminID := uuid.New().String()
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			adminDecideFn: func(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, adminID, actor.EmployeeID)
				assert.Equal(t, leave.RoleAdmin, actor.Role)
				assert.Equal(t, leave.ActionApprove, req.Action)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+leaveID+"/admin-decision", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", adminID)
		c.Set("role", string(leave.RoleAdmin))

		h.AdminDecision(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("conflict surfaces 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			adminDecideFn: func(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyDecided
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/admin-decision", strings.NewReader(`{"action":"reject"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.AdminDecision(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("premature approval surfaces 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			adminDecideFn: func(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrApprovalRequiresReview
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/admin-decision", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.AdminDecision(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("missing action fails validation", func(t *testing.T) {
		svc := &fakeLeaveService{
			adminDecideFn: func(ctx context.Context, actor leave.Actor, id string, req leave.AdminDecisionRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on a validation failure")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/x/admin-decision", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.AdminDecision(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})
}
