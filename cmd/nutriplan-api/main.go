package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	httpadapter "github.com/nutriplan/nutriplan-api/internal/adapters/http"
	"github.com/nutriplan/nutriplan-api/internal/adapters/llm"
	memstore "github.com/nutriplan/nutriplan-api/internal/adapters/storage/memory"
	sqlitestore "github.com/nutriplan/nutriplan-api/internal/adapters/storage/sqlite"
	"github.com/nutriplan/nutriplan-api/internal/app/conversation"
	"github.com/nutriplan/nutriplan-api/internal/app/weekplan"
	"github.com/nutriplan/nutriplan-api/internal/config"
	"github.com/nutriplan/nutriplan-api/internal/domain"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()

	// Model: mock for local development, Gemini otherwise.
	var (
		model domain.ModelClient
		err   error
	)
	if cfg.UseMockLLM {
		log.Println("[LLM] Using mock model client")
		model = llm.NewMockClient()
	} else {
		log.Printf("[LLM] Using Gemini model client (model=%s)", cfg.ModelName)
		model, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	// Storage: memory (default, lost on restart) or sqlite.
	var convStore domain.ConversationStore
	var planStore domain.PlanStore

	switch cfg.StorageBackend {
	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		store, err := sqlitestore.NewStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer store.Close()

		// 1 store, implements 2 interfaces
		convStore = store
		planStore = store

	default:
		log.Println("[STORE] Using in-memory storage")
		convStore = memstore.NewConversationStore()
		planStore = memstore.NewPlanStore()
	}

	convSvc := conversation.NewService(model, convStore, planStore,
		conversation.WithMaxHistoryTurns(cfg.MaxHistoryTurns))
	weekSvc := weekplan.NewService(model, planStore, convStore)

	handler := httpadapter.NewServer(convSvc, weekSvc)

	addr := ":" + cfg.Port
	log.Println("NutriPlan API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
