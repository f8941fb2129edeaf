package bootstrap

import (
	"context"
	"log"

	"companion-chat-be/internal/config"
	"companion-chat-be/internal/controller"
	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/memory"
	redisrepo "companion-chat-be/internal/repository/redis"
	"companion-chat-be/internal/repository/unitofwork"
	"companion-chat-be/internal/service"
	"companion-chat-be/pkg/concepts"
	"companion-chat-be/pkg/embedding"
	"companion-chat-be/pkg/llm/factory"
	"companion-chat-be/pkg/mastery"
	pktNats "companion-chat-be/pkg/nats"
	"companion-chat-be/pkg/pipeline"
	"companion-chat-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	MasteryController   controller.IMasteryController

	// Background Services (Exposed for main.go to run)
	IngestConsumerService  service.IIngestConsumerService
	ConceptConsumerService service.IConceptConsumerService
	EventMonitorService    service.IEventMonitorService

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	sessionRepo := memory.NewSessionRepository()
	windowRepo := redisrepo.NewWindowRepository(rdb)

	// 5. Domain Components
	retriever := retrieval.NewRetriever(embeddingProvider, sysLogger)
	pipelineExecutor := pipeline.NewExecutor(llmProvider, retriever, sysLogger)
	conceptExtractor := concepts.NewExtractor(llmProvider, sysLogger)
	masteryUpdater := mastery.NewUpdater(uowFactory, sysLogger)

	// 6. Services
	ingestPublisher := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	conceptPublisher := service.NewPublisherService(cfg.Keys.ConceptExtractTopic, pubSub)

	chatService := service.NewChatService(
		uowFactory,
		pipelineExecutor,
		sessionRepo,
		windowRepo,
		conceptPublisher,
		natsPub,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, ingestPublisher)
	masteryService := service.NewMasteryService(uowFactory)

	ingestConsumer := service.NewIngestConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)
	eventMonitor := service.NewEventMonitorService(natsSub, sysLogger)
	conceptConsumer := service.NewConceptConsumerService(
		pubSub,
		cfg.Keys.ConceptExtractTopic,
		conceptExtractor,
		masteryUpdater,
		windowRepo,
		natsPub,
		sysLogger,
	)

	return &Container{
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		MasteryController:   controller.NewMasteryController(masteryService),

		IngestConsumerService:  ingestConsumer,
		ConceptConsumerService: conceptConsumer,
		EventMonitorService:    eventMonitor,

		Logger: sysLogger,
	}
}
