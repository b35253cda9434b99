package bootstrap

import (
	"log"
	"time"

	"sushi-ordering-be/internal/config"
	"sushi-ordering-be/internal/controller"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/internal/repository/implementation"
	"sushi-ordering-be/internal/repository/memory"
	"sushi-ordering-be/internal/service"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/llm/factory"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag/agent"
	"sushi-ordering-be/pkg/rag/answer"
	"sushi-ordering-be/pkg/rag/indexer"
	"sushi-ordering-be/pkg/rag/retriever"
	"sushi-ordering-be/pkg/rag/tools"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	MenuController      controller.IMenuController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	MenuService     service.IMenuService
}

// NewContainer wires the whole application. A nil db selects the in-memory
// repositories: same contracts, no persistence, useful for local runs and
// demos without Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	var menuRepo contract.MenuRepository
	var embeddingRepo contract.MenuEmbeddingRepository
	if db != nil {
		menuRepo = implementation.NewMenuRepository(db)
		embeddingRepo = implementation.NewMenuEmbeddingRepository(db)
		log.Printf("[INFO] Using Postgres repositories (pgvector)")
	} else {
		menuRepo = memory.NewMenuRepository()
		embeddingRepo = memory.NewMenuEmbeddingRepository()
		log.Printf("[WARN] DB_CONNECTION_STRING is empty, using in-memory repositories")
	}

	// 4. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. RAG Core
	menuCache := menucache.New(time.Duration(cfg.Ai.MenuCacheTTLSeconds) * time.Second)
	knowledgeIndexer := indexer.New(embeddingProvider, embeddingRepo, menuCache, sysLogger)
	menuRetriever := retriever.New(embeddingProvider, embeddingRepo, sysLogger)
	toolRegistry := tools.NewRegistry(menuRetriever, menuRepo)
	chatAgent := agent.New(llmProvider, toolRegistry, cfg.Ai.AgentMaxRounds, sysLogger)
	answerer := answer.New(menuRetriever, llmProvider, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.MenuUpdatedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.MenuUpdatedTopic,
		menuRepo,
		knowledgeIndexer,
		sysLogger,
	)

	menuService := service.NewMenuService(menuRepo, embeddingRepo, menuCache, publisherService, knowledgeIndexer, sysLogger)
	assistantService := service.NewAssistantService(
		chatAgent,
		answerer,
		menuRetriever,
		menuRepo,
		embeddingProvider,
		llmProvider,
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.LLMModel,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		MenuController:      controller.NewMenuController(menuService),
		ConsumerService:     consumerService,
		MenuService:         menuService,
	}
}
