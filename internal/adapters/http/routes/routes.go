package routes

import (
	"washlab-backend/internal/adapters/http/handlers"
	"washlab-backend/internal/adapters/http/middleware"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/config"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/mailer"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, mail *mailer.Mailer, uploader storage.Uploader) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	telemetryRepo := repositories.NewTelemetryRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	waterQualityRepo := repositories.NewWaterQualityRepository(db)
	hygieneRepo := repositories.NewHygieneRepository(db)
	billingRepo := repositories.NewBillingRepository(db)
	carbonRepo := repositories.NewCarbonRepository(db)
	insuranceRepo := repositories.NewInsuranceRepository(db)
	partRepo := repositories.NewPartRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	testimonialRepo := repositories.NewTestimonialRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, mail, cfg)
	userService := services.NewUserService(userRepo)
	assetService := services.NewAssetService(assetRepo)
	telemetryService := services.NewTelemetryService(telemetryRepo, assetRepo, billingRepo)
	ticketService := services.NewTicketService(ticketRepo, assetRepo)
	waterQualityService := services.NewWaterQualityService(waterQualityRepo, assetRepo)
	hygieneService := services.NewHygieneService(hygieneRepo, assetRepo)
	financeService := services.NewFinanceService(billingRepo, assetRepo)
	carbonService := services.NewCarbonService(carbonRepo, assetRepo)
	ewsService := services.NewEWSService(telemetryRepo, ticketService)
	alertService := services.NewAlertService(alertRepo)
	insuranceService := services.NewInsuranceService(insuranceRepo, assetRepo)
	partService := services.NewPartService(partRepo)
	testimonialService := services.NewTestimonialService(testimonialRepo)
	mpesaService := services.NewMpesaService(paymentRepo, cfg.Mpesa)
	radioService := services.NewRadioService(cfg.Radio.StatusURL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService, uploader)
	telemetryHandler := handlers.NewTelemetryHandler(telemetryService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	waterQualityHandler := handlers.NewWaterQualityHandler(waterQualityService, uploader)
	hygieneHandler := handlers.NewHygieneHandler(hygieneService, uploader)
	financeHandler := handlers.NewFinanceHandler(financeService)
	carbonHandler := handlers.NewCarbonHandler(carbonService)
	docsHandler := handlers.NewDocsHandler(uploader, carbonService)
	ewsHandler := handlers.NewEWSHandler(ewsService)
	alertHandler := handlers.NewAlertHandler(alertService)
	insuranceHandler := handlers.NewInsuranceHandler(insuranceService)
	partHandler := handlers.NewPartHandler(partService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService, uploader)
	mpesaHandler := handlers.NewMpesaHandler(mpesaService)
	radioHandler := handlers.NewRadioHandler(radioService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(cfg, authService)
	anyRole := middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleOperator, domain.RoleCounty, domain.RoleAuditor)
	fieldStaff := middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleOperator)
	countyStaff := middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleOperator, domain.RoleCounty)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public + rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/verify-email", middleware.AuthRateLimiter(), authHandler.VerifyEmail)
	authRoutes.Post("/resend-code", middleware.StrictRateLimiter(), authHandler.ResendCode)
	authRoutes.Post("/register-admin", auth, middleware.SuperAdminOnly(), authHandler.RegisterAsAdmin)
	authRoutes.Get("/me", auth, authHandler.Me)

	// User management (super-admin only)
	userRoutes := apiV1.Group("/users", auth, middleware.SuperAdminOnly())
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", userHandler.Delete)

	// Assets
	assetRoutes := apiV1.Group("/assets", auth)
	assetRoutes.Get("/", anyRole, assetHandler.List)
	assetRoutes.Get("/:id", anyRole, assetHandler.Get)
	assetRoutes.Post("/", fieldStaff, assetHandler.Create)
	assetRoutes.Put("/:id", fieldStaff, assetHandler.Update)
	assetRoutes.Post("/:id/images", fieldStaff, assetHandler.UploadImages)
	assetRoutes.Delete("/:id", middleware.SuperAdminOnly(), assetHandler.Delete)

	// Telemetry & KPIs
	apiV1.Post("/telemetry", auth, fieldStaff, telemetryHandler.Ingest)
	apiV1.Get("/telemetry/:id", auth, anyRole, telemetryHandler.ListByAsset)
	apiV1.Get("/kpi/network", auth, anyRole, telemetryHandler.NetworkKPIs)
	apiV1.Get("/kpi/hub/:id", auth, anyRole, telemetryHandler.HubKPIs)
	apiV1.Get("/ts/:id", auth, anyRole, telemetryHandler.TimeSeries)

	// Tickets
	ticketRoutes := apiV1.Group("/tickets", auth)
	ticketRoutes.Get("/", anyRole, ticketHandler.List)
	ticketRoutes.Get("/stats", anyRole, ticketHandler.Stats)
	ticketRoutes.Get("/:id", anyRole, ticketHandler.Get)
	ticketRoutes.Post("/", fieldStaff, ticketHandler.Create)
	ticketRoutes.Put("/:id", fieldStaff, ticketHandler.Update)

	// Water quality
	waterRoutes := apiV1.Group("/water-quality", auth)
	waterRoutes.Get("/", anyRole, waterQualityHandler.List)
	waterRoutes.Post("/", fieldStaff, waterQualityHandler.Create)

	// Hygiene sessions
	hygieneRoutes := apiV1.Group("/hygiene", auth)
	hygieneRoutes.Get("/", anyRole, hygieneHandler.List)
	hygieneRoutes.Post("/", fieldStaff, hygieneHandler.Create)

	// Finance
	financeRoutes := apiV1.Group("/finance", auth)
	financeRoutes.Get("/summary", anyRole, financeHandler.Summary)
	financeRoutes.Get("/debtors", anyRole, financeHandler.Debtors)
	financeRoutes.Get("/periods", anyRole, financeHandler.ListPeriods)
	financeRoutes.Post("/periods", countyStaff, financeHandler.CreatePeriod)
	financeRoutes.Get("/periods/:id/summaries", anyRole, financeHandler.ListSummaries)
	financeRoutes.Post("/summaries", countyStaff, financeHandler.CreateSummary)

	// Carbon readiness
	carbonRoutes := apiV1.Group("/carbon", auth)
	carbonRoutes.Get("/periods", anyRole, carbonHandler.ListPeriods)
	carbonRoutes.Post("/periods", countyStaff, carbonHandler.CreatePeriod)
	carbonRoutes.Get("/readiness", anyRole, carbonHandler.Readiness)
	carbonRoutes.Post("/readiness", countyStaff, carbonHandler.SaveReadiness)
	carbonRoutes.Get("/evidence-export", anyRole, carbonHandler.ExportEvidence)

	// Documents
	docsRoutes := apiV1.Group("/docs", auth)
	docsRoutes.Get("/list", anyRole, docsHandler.List)
	docsRoutes.Post("/upload", countyStaff, docsHandler.Upload)
	docsRoutes.Post("/pin", countyStaff, docsHandler.Pin)

	// Early warning system (derived alerts)
	ewsRoutes := apiV1.Group("/ews", auth)
	ewsRoutes.Get("/alerts", anyRole, ewsHandler.Alerts)
	ewsRoutes.Post("/actions", fieldStaff, ewsHandler.Action)

	// Persisted county alerts
	alertRoutes := apiV1.Group("/alerts", auth)
	alertRoutes.Get("/", anyRole, alertHandler.List)
	alertRoutes.Get("/stats", anyRole, alertHandler.Stats)
	alertRoutes.Get("/trend/:id", anyRole, alertHandler.Trend)
	alertRoutes.Post("/", countyStaff, alertHandler.Create)
	alertRoutes.Patch("/:id/resolve", countyStaff, alertHandler.Resolve)

	// Insurance
	insuranceRoutes := apiV1.Group("/insurance", auth)
	insuranceRoutes.Get("/policies", anyRole, insuranceHandler.ListPolicies)
	insuranceRoutes.Get("/policies/:id", anyRole, insuranceHandler.GetPolicy)
	insuranceRoutes.Post("/policies", countyStaff, insuranceHandler.CreatePolicy)
	insuranceRoutes.Delete("/policies/:id", middleware.SuperAdminOnly(), insuranceHandler.DeletePolicy)
	insuranceRoutes.Get("/policies/:id/claims", anyRole, insuranceHandler.ListClaims)
	insuranceRoutes.Post("/claims", countyStaff, insuranceHandler.CreateClaim)
	insuranceRoutes.Patch("/claims/:id", countyStaff, insuranceHandler.UpdateClaim)

	// Spare parts
	partRoutes := apiV1.Group("/parts", auth)
	partRoutes.Get("/", anyRole, partHandler.List)
	partRoutes.Get("/low-stock", anyRole, partHandler.LowStock)
	partRoutes.Get("/:id", anyRole, partHandler.Get)
	partRoutes.Post("/", fieldStaff, partHandler.Create)
	partRoutes.Put("/:id", fieldStaff, partHandler.Update)
	partRoutes.Patch("/:id/stock", fieldStaff, partHandler.AdjustStock)
	partRoutes.Delete("/:id", middleware.SuperAdminOnly(), partHandler.Delete)

	// Testimonials (public submit + approved feed, protected moderation)
	testimonialRoutes := apiV1.Group("/testimonials")
	testimonialRoutes.Post("/", middleware.AuthRateLimiter(), testimonialHandler.Create)
	testimonialRoutes.Get("/approved", testimonialHandler.ListApproved)
	testimonialRoutes.Get("/all", auth, countyStaff, testimonialHandler.List)
	testimonialRoutes.Patch("/:id/status", auth, countyStaff, testimonialHandler.SetStatus)
	testimonialRoutes.Post("/:id/images", auth, countyStaff, testimonialHandler.UploadImages)
	testimonialRoutes.Delete("/:id", auth, middleware.SuperAdminOnly(), testimonialHandler.Delete)

	// Payments (callback is public, Safaricom posts to it)
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Post("/callback", mpesaHandler.Callback)
	paymentRoutes.Post("/stkpush", auth, fieldStaff, middleware.StrictRateLimiter(), mpesaHandler.STKPush)
	paymentRoutes.Get("/", auth, anyRole, mpesaHandler.ListPayments)
	paymentRoutes.Get("/:id", auth, anyRole, mpesaHandler.GetPayment)

	// Community radio
	apiV1.Get("/radio/stats", auth, anyRole, radioHandler.Stats)
}
