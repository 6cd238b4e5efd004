package routes

import (
	"expense-management/internal/adapters/http/handlers"
	"expense-management/internal/adapters/http/middleware"
	"expense-management/internal/adapters/http/views"
	"expense-management/internal/adapters/persistence/repositories"
	"expense-management/internal/config"
	"expense-management/internal/core/services"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Version is reported by the API info endpoint
const Version = "1.0.0"

// NewApp creates the Fiber app with the page engine, the JSON codec and the
// shared middleware stack
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Expense Management v" + Version,
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		Views:        views.NewEngine(),
	})

	middleware.Setup(app, cfg)
	return app
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, expenseService *services.ExpenseService, logger *zap.Logger) {
	// Pages fall back to sample data when the active store fails
	fallback := expenseService
	if expenseService.Mode() != repositories.ModeDummy {
		fallback = services.NewExpenseService(repositories.NewDummyGateway(logger), cfg.Database.Timeout, logger)
	}

	// Initialize services
	chatService := services.NewChatService(cfg.OpenAI, expenseService, logger)
	dashboardService := services.NewDashboardService(expenseService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(expenseService, chatService, Version)
	expenseHandler := handlers.NewExpenseHandler(expenseService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	chatHandler := handlers.NewChatHandler(chatService)
	pageHandler := handlers.NewPageHandler(expenseService, fallback, logger)

	// ============================================================
	// Operational routes
	// ============================================================
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	// ============================================================
	// API
	// ============================================================
	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	setupExpenseRoutes(api.Group("/expenses"), expenseHandler)
	api.Get("/dashboard", dashboardHandler.GetSummary)
	setupChatRoutes(api.Group("/chat"), chatHandler)

	// ============================================================
	// Pages
	// ============================================================
	setupPageRoutes(app, pageHandler)

	logger.Info("routes configured",
		zap.String("store_mode", expenseService.Mode()),
		zap.Bool("chat_configured", chatService.IsConfigured()),
	)
}

func setupExpenseRoutes(router fiber.Router, handler *handlers.ExpenseHandler) {
	router.Get("/", handler.ListExpenses)
	router.Post("/", handler.CreateExpense)
	router.Get("/pending", handler.ListPendingExpenses)
	router.Get("/categories", middleware.ReferenceDataCache(), handler.ListCategories)
	router.Get("/statuses", middleware.ReferenceDataCache(), handler.ListStatuses)
	router.Get("/users", handler.ListUsers)
	router.Get("/:id<int>", handler.GetExpense)
	router.Post("/:id<int>/submit", handler.SubmitExpense)
	router.Post("/:id<int>/approve", handler.ApproveExpense)
	router.Post("/:id<int>/reject", handler.RejectExpense)
}

func setupChatRoutes(router fiber.Router, handler *handlers.ChatHandler) {
	router.Get("/status", handler.ChatStatus)
	router.Post("/", middleware.ChatRateLimiter(), middleware.NoCacheHeaders(), handler.Chat)
}

func setupPageRoutes(app *fiber.App, handler *handlers.PageHandler) {
	app.Get("/", handler.Dashboard)
	app.Get("/expenses", handler.Expenses)
	app.Post("/expenses/submit", handler.SubmitExpense)
	app.Get("/expenses/add", handler.AddExpense)
	app.Post("/expenses/add", handler.CreateExpense)
	app.Get("/approve", handler.Approve)
	app.Post("/approve/approve", handler.ApproveExpense)
	app.Post("/approve/reject", handler.RejectExpense)
	app.Get("/chat", handler.Chat)
}
