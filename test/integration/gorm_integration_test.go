package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/unitofwork"
	"companion-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.KnowledgeChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Conversation Repository", func(t *testing.T) {
		count, err := uow.ConversationRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Conversation count: %d", count)
	})

	t.Run("Check Knowledge Chunk Repository", func(t *testing.T) {
		// Count implies the table and the vector column exist
		count, err := uow.KnowledgeChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("KnowledgeChunk count: %d", count)
	})

	t.Run("Check Transactional Conversation Turn", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		conversationId := uuid.New()
		conversation := &entity.Conversation{
			Id:     conversationId,
			UserId: userId,
			Title:  "Integration Test Conversation",
		}
		err = uow.ConversationRepository().Create(ctx, conversation)
		assert.NoError(t, err)

		userMsg := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversationId,
			UserId:         userId,
			Sender:         entity.MessageSenderUser,
			Content:        "integration test user turn",
		}
		err = uow.MessageRepository().Create(ctx, userMsg)
		assert.NoError(t, err)

		assistantMsg := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversationId,
			UserId:         userId,
			Sender:         entity.MessageSenderAssistant,
			Content:        "integration test assistant turn",
		}
		err = uow.MessageRepository().Create(ctx, assistantMsg)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Conversation with both turn messages in Transaction")
	})

	t.Run("Check Concept Mastery Row Lock Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		conceptKey := "recognizes_thought_impermanence"

		txUow := uowFactory.NewUnitOfWork(ctx)
		err := txUow.Begin(ctx)
		assert.NoError(t, err)
		defer txUow.Rollback()

		repo := txUow.ConceptMasteryRepository()

		// Absent row resolves to (nil, nil)
		existing, err := repo.FindForUpdate(ctx, userId, conceptKey)
		assert.NoError(t, err)
		assert.Nil(t, existing)

		mastery := &entity.ConceptMastery{
			Id:                 uuid.New(),
			UserId:             userId,
			ConceptKey:         conceptKey,
			UnderstandingLevel: 6,
			EncounterCount:     1,
			Observations: []entity.ConceptObservation{
				{ConceptKey: conceptKey, Confidence: 6, Evidence: "integration test"},
			},
		}
		err = repo.Create(ctx, mastery)
		assert.NoError(t, err)

		locked, err := repo.FindForUpdate(ctx, userId, conceptKey)
		assert.NoError(t, err)
		if assert.NotNil(t, locked) {
			assert.Equal(t, 6, locked.UnderstandingLevel)
			assert.Len(t, locked.Observations, 1)
		}
	})
}
