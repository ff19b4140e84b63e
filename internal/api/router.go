package api

import (
	"errors"

	"mindgrid/docs"
	"mindgrid/internal/api/handlers"
	"mindgrid/pkg/auth"
	"mindgrid/pkg/config"
	"mindgrid/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Documents   *handlers.DocumentHandler
	Reminders   *handlers.ReminderHandler
	Tasks       *handlers.TaskHandler
	Journal     *handlers.JournalHandler
	Diagnostics *handlers.DiagnosticsHandler
}

// SetupRouter builds the application. uploadsDir is served under /uploads
// when set, which is how locally stored documents get their file URLs.
func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	serverCfg *config.ServerConfig,
	uploadsDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: serverCfg.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: serverCfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger document
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	if uploadsDir != "" {
		appLogger.Info("Serving uploads", zap.String("path", uploadsDir))
		app.Static("/uploads", uploadsDir)
	}

	app.Get("/", h.Diagnostics.Root)
	app.Get("/health", h.Diagnostics.Health)

	api := app.Group("/api")
	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/signup", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)
	authRoutes.Get("/me", requireAuth, h.Auth.Me)

	documents := api.Group("/documents", requireAuth)
	documents.Post("/upload", h.Documents.UploadDocument)
	documents.Get("", h.Documents.ListDocuments)
	documents.Get("/stats", h.Documents.Stats)
	documents.Get("/:id", h.Documents.GetDocument)
	documents.Get("/:id/file", h.Documents.DownloadDocument)
	documents.Delete("/:id", h.Documents.DeleteDocument)

	api.Get("/reminders", requireAuth, h.Reminders.ListReminders)

	tasks := api.Group("/tasks", requireAuth)
	tasks.Get("/dashboard/summary", h.Tasks.Dashboard)
	tasks.Post("/generate", h.Tasks.GenerateTask)
	tasks.Post("/ai-journal", h.Tasks.PreviewJournalTasks)
	tasks.Post("/ai-journal/clarify", h.Tasks.ClarifyJournalTasks)
	tasks.Post("/ai-journal/confirm", h.Tasks.ConfirmJournalTasks)
	tasks.Post("", h.Tasks.CreateTask)
	tasks.Get("", h.Tasks.ListTasks)
	tasks.Get("/:id", h.Tasks.GetTask)
	tasks.Put("/:id", h.Tasks.UpdateTask)
	tasks.Delete("/:id", h.Tasks.DeleteTask)

	journal := api.Group("/journal", requireAuth)
	journal.Post("/create", h.Journal.CreateEntry)
	journal.Post("/analyze", h.Journal.AnalyzeEntry)
	journal.Get("/entries", h.Journal.ListEntries)
	journal.Get("/entries/:id", h.Journal.GetEntry)
	journal.Delete("/entries/:id", h.Journal.DeleteEntry)

	test := api.Group("/test")
	test.Post("/ai", h.Diagnostics.TestAI)
	test.Post("/ocr", h.Diagnostics.TestOCR)

	return app
}
