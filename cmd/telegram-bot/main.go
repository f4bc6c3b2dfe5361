package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/ai"
	"meal-planner/internal/app"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/llm"
	"meal-planner/internal/metrics"
	"meal-planner/internal/store"
	"meal-planner/internal/store/file"
	"meal-planner/internal/store/sqlite"
	"meal-planner/internal/telegram"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var textGen llm.TextGenerator
	var modelName string
	switch {
	case cfg.GroqAPIKey != "":
		textGen = llm.NewGroqClient(cfg.GroqAPIKey)
		modelName = "llama-3.3-70b-versatile"
	case cfg.GeminiAPIKey != "":
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
		modelName = "gemini-1.5-flash"
	}

	var planStore store.Store
	var metricsStore *metrics.Store
	switch cfg.StorageBackend {
	case "sqlite":
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		planStore = sqlite.NewStore(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
	case "file":
		fileStore, err := file.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		planStore = fileStore
	}

	var recipeClipper *clipper.Clipper
	if textGen != nil {
		recipeClipper = clipper.NewClipper(textGen)
	}

	application := app.NewApp(cfg, planStore, ai.NewService(textGen), metricsStore, recipeClipper, modelName)

	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
