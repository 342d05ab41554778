package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"lead-connector/internal/config"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/handlers"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
	"lead-connector/internal/infra/repository"
	"lead-connector/internal/infra/routes"
	"lead-connector/internal/infra/services"
	"lead-connector/internal/middleware"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	botToken := config.GetEnv("BOT_TOKEN")

	adminChatID, err := strconv.ParseInt(config.GetEnv("ADMIN_CHAT_ID"), 10, 64)
	if err != nil {
		log.Fatal(fmt.Sprintf("ADMIN_CHAT_ID must be a numeric chat id: %v", err))
	}

	pixelID := config.GetEnvOptional("META_PIXEL_ID")
	accessToken := config.GetEnvOptional("META_ACCESS_TOKEN")
	graphAPIURL := config.GetEnvOrDefault("GRAPH_API_URL", "https://graph.facebook.com")

	dataDir := config.GetEnvOrDefault("DATA_DIR", "./data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(fmt.Sprintf("Failed to create data dir %s: %v", dataDir, err))
	}

	userRepo := repository.NewFileRepository(filepath.Join(dataDir, "users.json"), services.UserKey, log)
	sessionRepo := repository.NewFileRepository(filepath.Join(dataDir, "sessions.json"), services.SessionKey, log)
	emailRepo := repository.NewFileRepository(filepath.Join(dataDir, "emails.json"), services.EmailKey, log)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var userSvc Iservices.IUserService = services.NewUserService(userRepo, emailRepo, log)
	var sessionSvc Iservices.ISessionService = services.NewSessionService(sessionRepo, log)
	var leadSvc Iservices.ILeadService = services.NewLeadService(log, httpClient, graphAPIURL, pixelID, accessToken)

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to start Telegram bot: %v", err))
	}
	log.Info(fmt.Sprintf("Authorized on account %s", bot.Self.UserName))

	chatProvider := provider.NewTelegramProvider(log, bot)

	var broadcastSvc Iservices.IBroadcastService = services.NewBroadcastService(log, userSvc, chatProvider)
	commandSvc := services.NewCommandService(log, adminChatID, userSvc, sessionSvc, leadSvc, broadcastSvc, chatProvider)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := bot.GetUpdatesChan(updateConfig)

	go func() {
		for update := range updates {
			commandSvc.HandleUpdate(update)
		}
	}()

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	sessionHandlers := handlers.NewSessionHandlers(log, sessionSvc)

	routes := routes.NewRoutes(
		router,
		sessionHandlers,
	)

	routes.Init()

	port := config.GetEnvOrDefault("PORT", "10000")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	bot.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
