// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/config"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/cron"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/database"
	appointmentRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/appointment"
	helpRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/helprequest"
	knowledgeRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/knowledge"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/handlers"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/middleware"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/routes"
	agentSvc "github.com/CaptainRedCodes/Saloon-AI-Agent/services/agent"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/booking"
	helpSvc "github.com/CaptainRedCodes/Saloon-AI-Agent/services/help"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/knowledge"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	utils.InitSessionCache()

	salonInfo, err := models.LoadSalonInfo(config.AppConfig.SalonInfoPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load salon info: %v", err)
	}

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(db)
	hRepo := helpRepo.NewMongoHelpRequestRepo(db)
	kRepo := knowledgeRepo.NewMongoKnowledgeRepo(db)

	// booking core.
	calendar := booking.NewSlotCalendar(apptRepo)
	checker := booking.NewAvailabilityChecker(calendar)
	manager := booking.NewBookingManager(apptRepo)
	rules := booking.NewRules(salonInfo.Services, salonInfo.ClosedDay)

	// knowledge base.
	embedder, err := knowledge.NewGeminiEmbedder(context.Background(), config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize embedder: %v", err)
	}
	kbService := knowledge.NewKnowledgeService(kRepo, embedder)

	syncCtx, cancelSync := context.WithTimeout(context.Background(), 60*time.Second)
	if err := kbService.Sync(syncCtx, salonInfo.FAQs); err != nil {
		// The agent still runs without FAQ answers; help requests escalate.
		logger.Sugar().Warnf("main: FAQ sync failed: %v", err)
	}
	cancelSync()

	// supervisor escalation pipeline.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	helpService := helpSvc.NewHelpRequestService(hRepo, kbService, asynqClient)
	cron.InitEscalationWorker()

	// agent tool layer.
	sessionStore := agentSvc.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)
	agentService := &agentSvc.DefaultAgentService{
		Sessions:  sessionStore,
		Checker:   checker,
		Manager:   manager,
		Rules:     rules,
		Knowledge: kbService,
		Help:      helpService,
	}

	agentHandler := handlers.NewAgentHandler(agentService)
	helpHandler := handlers.NewHelpRequestHandler(helpService)
	apptHandler := handlers.NewAppointmentHandler(apptRepo)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, agentHandler, helpHandler, apptHandler)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), mongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
