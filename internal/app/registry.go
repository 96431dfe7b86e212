package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"go-leaveflow/internal/balance"
	"go-leaveflow/internal/directory"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/rbac"
	"go-leaveflow/internal/rbac/infra"
	"go-leaveflow/internal/report"
	"go-leaveflow/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	roleRepo := role.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	directoryService := directory.NewService(directoryRepo)
	roleResolver := role.NewResolver(roleRepo, directoryService)
	balanceService := balance.NewService(leaveRepo, rdb, annualCap())
	leaveService := leave.NewService(
		db,
		leaveRepo,
		directoryService,
		roleResolver,
		balanceService,
		outboxRepo,
		os.Getenv("LEAVE_CAP_MODE"),
	)
	reportService := report.NewService(leaveRepo)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService)
	balanceHandler := balance.NewHandler(balanceService)
	reportHandler := report.NewHandler(reportService)
	roleHandler := role.NewHandler(roleResolver)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
		role.RegisterRoutes(api, roleHandler, rbacService)
	}

	return nil
}

func annualCap() int {
	if raw := os.Getenv("LEAVE_ANNUAL_CAP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return balance.DefaultAnnualCap
}
