package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/middleware"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	salaryHandler SalaryHandler,
	payrollHandler PayrollHandler,
	configHandler ConfigHandler,
	auditHandler AuditHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/policy", attendanceHandler.GetPolicy)
				r.Put("/policy", attendanceHandler.UpdatePolicy)
				r.Post("/classify", attendanceHandler.ClassifyDay)
				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Get("/days", attendanceHandler.ListDays)
					r.Put("/days", attendanceHandler.ManualEdit)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", leaveHandler.ListTypes)
					r.Post("/", leaveHandler.CreateType)
					r.Get("/{code}", leaveHandler.GetType)
					r.Put("/{code}", leaveHandler.UpdateType)
					r.Delete("/{code}", leaveHandler.DeleteType)
				})
				r.Get("/policy", leaveHandler.GetPolicyConfig)
				r.Put("/policy", leaveHandler.UpdatePolicyConfig)
				r.Get("/employees/{employeeID}/balances", leaveHandler.ListBalances)
			})

			r.Route("/employees/{employeeID}/salary", func(r chi.Router) {
				r.Get("/", salaryHandler.GetStructure)
				r.Put("/", salaryHandler.EditStructure)
				r.Get("/history", salaryHandler.ListStructureHistory)
			})

			r.Route("/salary/change-requests", func(r chi.Router) {
				r.Get("/", salaryHandler.ListChangeRequests)
				r.Get("/{id}", salaryHandler.GetChangeRequest)

				// Director only
				r.Group(func(r chi.Router) {
					r.Use(middleware.DirectorOnly)
					r.Post("/{id}/decision", salaryHandler.DecideChangeRequest)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Post("/", payrollHandler.CreateRun)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Delete("/", payrollHandler.DeleteRun)
						r.Post("/process", payrollHandler.ProcessRun)
						r.Post("/lock", payrollHandler.LockRun)
						r.Get("/register.csv", payrollHandler.ExportRunCSV)
					})
				})
				r.Route("/payslips/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPayslip)
					r.Put("/", payrollHandler.EditPayslip)
					r.Get("/pdf", payrollHandler.ExportPayslipPDF)
				})

				r.Get("/statutory", configHandler.GetStatutoryConfig)
				r.Put("/statutory", configHandler.UpdateStatutoryConfig)

				r.Route("/rules", func(r chi.Router) {
					r.Get("/", configHandler.ListCustomRules)
					r.Post("/", configHandler.CreateCustomRule)
					r.Get("/{id}", configHandler.GetCustomRule)
					r.Put("/{id}", configHandler.UpdateCustomRule)
					r.Delete("/{id}", configHandler.DeleteCustomRule)
				})

				r.Route("/advances", func(r chi.Router) {
					r.Get("/", configHandler.ListAdvances)
					r.Post("/", configHandler.CreateAdvance)
					r.Get("/{id}", configHandler.GetAdvance)
					r.Post("/{id}/deactivate", configHandler.DeactivateAdvance)
				})

				r.Route("/deductions", func(r chi.Router) {
					r.Get("/", configHandler.ListOneTimeDeductions)
					r.Post("/", configHandler.CreateOneTimeDeduction)
					r.Delete("/{id}", configHandler.DeleteOneTimeDeduction)
				})
			})

			r.Get("/audit/{targetType}/{targetID}", auditHandler.ListByTarget)
		})
	})
	return r
}
