package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentio-backend/internal/config"
	"sentio-backend/internal/handlers"
	"sentio-backend/internal/router"
	"sentio-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Sentio Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Chat Provider ────
	var completer services.Completer
	switch cfg.ChatProvider {
	case config.ChatProviderGemini:
		gemini, err := services.NewGeminiCompleter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		completer = gemini
		log.Printf("✓ Gemini chat client initialized (%s)", cfg.GeminiModel)
	default:
		completer = services.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		log.Printf("✓ OpenAI chat client initialized (%s)", cfg.OpenAIModel)
	}

	// ──── Step 3: Initialize Speech Provider ────
	synth := services.NewElevenLabsSynthesizer(services.ElevenLabsConfig{
		APIKey:  cfg.ElevenLabsAPIKey,
		BaseURL: cfg.ElevenLabsBaseURL,
		VoiceID: cfg.ElevenLabsVoiceID,
		ModelID: cfg.ElevenLabsModelID,
		Voice: services.VoiceSettings{
			Stability:       services.DefaultStability,
			SimilarityBoost: services.DefaultSimilarityBoost,
		},
	})
	log.Printf("✓ ElevenLabs client initialized (voice %s)", cfg.ElevenLabsVoiceID)

	// ──── Initialize Handlers ────
	healthHandler := handlers.NewHealthHandler()
	chatHandler := handlers.NewChatHandler(services.NewChatService(completer))
	speechHandler := handlers.NewSpeechHandler(synth)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(healthHandler, chatHandler, speechHandler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(idle)
	}()

	log.Printf("✓ Sentio Backend ready on http://localhost:%s (%s)", cfg.Port, cfg.Env)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-idle
}
