package rbac_test

import (
	"testing"

	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type fakeRBACRepository struct {
	employeeRoles   []rbac.EmployeeRole
	rolePermissions []rbac.RolePermission
}

func (f *fakeRBACRepository) GetEmployeeRoles() ([]rbac.EmployeeRole, error) {
	return f.employeeRoles, nil
}

func (f *fakeRBACRepository) GetRolePermissions() ([]rbac.RolePermission, error) {
	return f.rolePermissions, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testModel)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)
	return e
}

func TestRBACService_Enforce(t *testing.T) {
	adminID := uuid.New()
	headID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeRBACRepository{
		employeeRoles: []rbac.EmployeeRole{
			{EmployeeID: adminID, RoleName: "admin"},
			{EmployeeID: headID, RoleName: "department_head"},
			{EmployeeID: employeeID, RoleName: "employee"},
		},
		rolePermissions: []rbac.RolePermission{
			{RoleName: "admin", Resource: "leave", Action: "decide"},
			{RoleName: "admin", Resource: "leave", Action: "read"},
			{RoleName: "department_head", Resource: "leave", Action: "review"},
			{RoleName: "department_head", Resource: "leave", Action: "read"},
			{RoleName: "employee", Resource: "leave", Action: "create"},
			{RoleName: "employee", Resource: "leave", Action: "read"},
		},
	}

	svc := rbac.NewService(repo, newTestEnforcer(t))

	t.Run("admin may decide", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: adminID.String(),
			Resource:   "leave",
			Action:     "decide",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("department head may review but not decide", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: headID.String(),
			Resource:   "leave",
			Action:     "review",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.Enforce(domain.EnforceRequest{
			EmployeeID: headID.String(),
			Resource:   "leave",
			Action:     "decide",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("plain employee may only create and read", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID.String(),
			Resource:   "leave",
			Action:     "create",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID.String(),
			Resource:   "leave",
			Action:     "review",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown employee is denied", func(t *testing.T) {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: uuid.New().String(),
			Resource:   "leave",
			Action:     "read",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
