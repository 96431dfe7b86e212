package rbac

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleName   string    `gorm:"size:50;primaryKey"`
	CreatedAt  time.Time
}

func (EmployeeRole) TableName() string { return "employee_roles" }

type RolePermission struct {
	RoleName  string `gorm:"size:50;primaryKey"`
	Resource  string `gorm:"size:50;primaryKey"`
	Action    string `gorm:"size:50;primaryKey"`
	CreatedAt time.Time
}

func (RolePermission) TableName() string { return "role_permissions" }
