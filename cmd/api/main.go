package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"talentmatch/ai-service/internal/config"
	"talentmatch/ai-service/internal/handlers"
	"talentmatch/ai-service/internal/repositories"
	"talentmatch/ai-service/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	llmService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.ChatModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}

	embedder, err := services.NewEmbeddingService(
		cfg.Gemini.APIKey,
		cfg.Gemini.EmbedModel,
		cfg.Retry.MaxAttempts,
		cfg.Retry.InitialDelay,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	extractor := services.NewExtractorService(llmService, cfg.Retry.MaxAttempts)
	matcher := services.NewMatcherService(llmService)
	multiMatch := services.NewMultiJobMatchService(llmService, cfg.Retry.MaxAttempts)
	questionService := services.NewQuestionService(llmService, cfg.Retry.MaxAttempts)
	answerService := services.NewAnswerService(llmService, cfg.Retry.MaxAttempts)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		candidateRepo,
		pdfParser,
		extractor,
		embedder,
		cfg.Server.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo, extractor, embedder)
	analysisHandler := handlers.NewAnalysisHandler(matcher, multiMatch)
	questionHandler := handlers.NewQuestionHandler(questionService, answerService)
	chatHandler := handlers.NewChatHandler(llmService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Talent Match AI Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Server.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/process-resume", resumeHandler.HandleProcessResume)
	api.Post("/process-jd", jobHandler.HandleProcessJob)
	api.Get("/match/:jobId", jobHandler.HandleMatch)
	api.Post("/analyze-match", analysisHandler.HandleAnalyzeMatch)
	api.Post("/match-multiple-jobs", analysisHandler.HandleMatchMultipleJobs)
	api.Post("/generate-questions", questionHandler.HandleGenerateQuestions)
	api.Post("/generate-followup", questionHandler.HandleGenerateFollowUp)
	api.Post("/score-answers", questionHandler.HandleScoreAnswers)
	api.Post("/chat", chatHandler.HandleChat)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Talent Match AI Service",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/process-resume",
				"POST /api/v1/process-jd",
				"GET /api/v1/match/:jobId",
				"POST /api/v1/analyze-match",
				"POST /api/v1/match-multiple-jobs",
				"POST /api/v1/generate-questions",
				"POST /api/v1/generate-followup",
				"POST /api/v1/score-answers",
				"POST /api/v1/chat",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
