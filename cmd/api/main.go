package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/config"
	appHTTP "github.com/Jaidataanalytics/hrms-sub000/internal/handler/http"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/cron"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/jwt"
	"github.com/Jaidataanalytics/hrms-sub000/internal/repository/postgresql"
	attendanceService "github.com/Jaidataanalytics/hrms-sub000/internal/service/attendance"
	exportService "github.com/Jaidataanalytics/hrms-sub000/internal/service/export"
	leaveService "github.com/Jaidataanalytics/hrms-sub000/internal/service/leave"
	payrollService "github.com/Jaidataanalytics/hrms-sub000/internal/service/payroll"
	salaryService "github.com/Jaidataanalytics/hrms-sub000/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	statutoryRepo := postgresql.NewStatutoryRepository(db)
	ruleRepo := postgresql.NewCustomRuleRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	runRepo := postgresql.NewRunRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, auditRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, attendanceRepo, employeeRepo, auditRepo)
	salarySvc := salaryService.NewSalaryService(db, salaryRepo, employeeRepo, auditRepo)
	configSvc := payrollService.NewConfigService(statutoryRepo, ruleRepo, advanceRepo, employeeRepo, auditRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		runRepo,
		statutoryRepo,
		ruleRepo,
		advanceRepo,
		salaryRepo,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		auditRepo,
		leaveSvc,
		cfg.Payroll.Workers,
	)
	exportSvc := exportService.NewExportService(runRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, exportSvc)
	configHandler := appHTTP.NewConfigHandler(configSvc)
	auditHandler := appHTTP.NewAuditHandler(auditRepo)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-carry-forward", 24*time.Hour, leaveSvc.CarryForwardJob)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		leaveHandler,
		salaryHandler,
		payrollHandler,
		configHandler,
		auditHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
