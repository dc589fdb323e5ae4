package main

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-Survey-Engine/docs"
	"Backend-Survey-Engine/src/config"
	"Backend-Survey-Engine/src/controllers"
	"Backend-Survey-Engine/src/database"
	"Backend-Survey-Engine/src/jobs"
	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/middleware"
	"Backend-Survey-Engine/src/routes"
	"Backend-Survey-Engine/src/services/locks"
	"Backend-Survey-Engine/src/services/messages"
	"Backend-Survey-Engine/src/services/responses"
	"Backend-Survey-Engine/src/services/traversal"
	"Backend-Survey-Engine/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title        Survey Response API
// @version      1.0
// @description  Answer traversal for surveys, quizzes and pulse rounds.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logger.Warnf("⚠️ JWT_SECRET not set. Admin routes will reject every request.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		logger.Fatalf("Error connecting to the database: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		database.Disconnect(shutdownCtx)
	}()
	if err := database.EnsureIndexes(ctx); err != nil {
		logger.Warnf("⚠️ %v", err)
	}

	if err := database.InitRedis(ctx, cfg.RedisURI); err != nil {
		logger.Warnf("⚠️ %v. Falling back to in-process locks.", err)
	}
	database.InitAsynq()

	catalog := messages.NewCatalog(messages.NewMongoSource(database.MessageCollection), cfg.MessagesLang)
	if err := catalog.Load(ctx); err != nil {
		logger.Warnf("⚠️ Message catalog not loaded, keys will be returned as-is: %v", err)
	}

	surveys := responses.NewSurveyStore(responses.SurveyCollections{
		Surveys:   database.SurveyCollection,
		Sections:  database.SectionCollection,
		Items:     database.SurveyItemCollection,
		Questions: database.QuestionCollection,
		EndPages:  database.EndPageCollection,
	})
	pulses := responses.NewPulseStore(database.PulseRoundCollection)

	opts := []traversal.Option{traversal.WithConflictAttempts(cfg.ConflictAttempts)}
	if database.RedisClient != nil {
		opts = append(opts, traversal.WithLocker(locks.NewRedisLocker(database.RedisClient, cfg.SessionLockTTL)))
	} else {
		opts = append(opts, traversal.WithLocker(locks.NewLocalLocker()))
	}
	if database.AsynqClient != nil {
		defer database.AsynqClient.Close()
		opts = append(opts, traversal.WithNotifier(jobs.NewNotifier(database.AsynqClient)))
	}

	engine := traversal.NewEngine(
		responses.NewSessionStore(database.ResponseSessionCollection),
		surveys,
		responses.NewInviteStore(database.InviteCollection),
		pulses,
		catalog,
		opts...,
	)

	if cfg.RunWorker && database.RedisURI != "" {
		mux := asynq.NewServeMux()
		jobs.RegisterHandlers(mux, surveys, pulses)
		go func() {
			if err := jobs.RunWorker(ctx, database.RedisURI, mux); err != nil {
				logger.Errorf("❌ %v", err)
			}
		}()
	}

	// สร้าง app instance
	app := fiber.New()
	app.Use(middleware.RequestID)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: false,
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.InitRoutes(app, routes.Handlers{
		Answers: controllers.NewAnswerController(engine),
		Admin:   controllers.NewAdminController(catalog),
	})

	go func() {
		<-ctx.Done()
		logger.Infof("🛑 Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Errorf("❌ shutdown: %v", err)
		}
	}()

	// เริ่มเซิร์ฟเวอร์
	logger.Infof("Server is running on port %s", cfg.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		logger.Fatalf("%v", err)
	}
}
