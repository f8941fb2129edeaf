package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"companion-chat-be/internal/constant"
	"companion-chat-be/internal/dto"
	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/memory"
	redisrepo "companion-chat-be/internal/repository/redis"
	"companion-chat-be/internal/repository/specification"
	"companion-chat-be/internal/repository/unitofwork"
	"companion-chat-be/pkg/classify"
	"companion-chat-be/pkg/events"
	"companion-chat-be/pkg/llm"
	pktNats "companion-chat-be/pkg/nats"
	"companion-chat-be/pkg/pipeline"
	"companion-chat-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	GetAllConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ConversationHistoryResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	DeleteConversation(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	executor         *pipeline.Executor
	sessionRepo      *memory.SessionRepository
	windowRepo       *redisrepo.WindowRepository
	conceptPublisher IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	executor *pipeline.Executor,
	sessionRepo *memory.SessionRepository,
	windowRepo *redisrepo.WindowRepository,
	conceptPublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		executor:         executor,
		sessionRepo:      sessionRepo,
		windowRepo:       windowRepo,
		conceptPublisher: conceptPublisher,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *chatService) CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{Id: conversation.Id}, nil
}

func (s *chatService) GetAllConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		response = append(response, &dto.ConversationResponse{
			Id:        c.Id,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return response, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ConversationHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedConversation(ctx, uow, userId, conversationId); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := &dto.ConversationHistoryResponse{
		ConversationId: conversationId,
		Messages:       make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		response.Messages = append(response.Messages, dto.MessageResponse{
			Id:        m.Id,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return response, nil
}

// SendMessage runs one full conversational turn. Everything before the
// generated reply degrades gracefully; a generation failure aborts the
// turn without persisting an assistant message. Concept extraction is
// scheduled after the reply and can never affect it.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.ownedConversation(ctx, uow, userId, req.ConversationId)
	if err != nil {
		return nil, err
	}

	history, err := uow.MessageRepository().FindRecentByConversation(ctx, req.ConversationId, constant.ChatHistoryWindow)
	if err != nil {
		return nil, err
	}

	userMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: req.ConversationId,
		UserId:         userId,
		Sender:         entity.MessageSenderUser,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	// First exchange names the conversation after the opening message.
	if conversation.Title == "" {
		now := time.Now()
		conversation.Title = deriveTitle(req.Content)
		conversation.UpdatedAt = &now
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			s.logger.Warn("ChatService", "Conversation title update failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Rolling window for the detection passes. Best effort; a Redis
	// outage only weakens detection, never the turn.
	if err := s.windowRepo.Push(ctx, req.ConversationId, req.Content); err != nil {
		s.logger.Warn("ChatService", "Message window push failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	session := s.loadSession(req.ConversationId, userId)
	session.TurnCount++
	session.GuidedPhase = store.PhaseForTurn(session.TurnCount)
	session.ListRequested = classify.IsListRequest(req.Content)
	session.LastQuery = req.Content
	s.sessionRepo.Save(session)

	result, err := s.executor.Execute(ctx, pipeline.Input{
		Query:          req.Content,
		History:        toModelHistory(history),
		RecentMessages: recentTexts(history, req.Content),
		Session:        session,
		ChunkRepo:      uow.KnowledgeChunkRepository(),
	})
	if err != nil {
		return nil, err
	}

	assistantMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: req.ConversationId,
		UserId:         userId,
		Sender:         entity.MessageSenderAssistant,
		Content:        result.Reply,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	s.publishGuardIssues(ctx, req.ConversationId, assistantMessage.Id, result)
	s.scheduleConceptExtraction(ctx, userId, req.ConversationId, userMessage.Id, req.Content, result)

	return &dto.SendMessageResponse{
		MessageId:     assistantMessage.Id,
		Reply:         result.Reply,
		QueryType:     string(result.Classification.QueryType),
		UsedRetrieval: result.Classification.UsedRetrieval,
		SkipReason:    string(result.Classification.SkipReason),
		CreatedAt:     assistantMessage.CreatedAt,
	}, nil
}

func (s *chatService) DeleteConversation(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedConversation(ctx, uow, userId, conversationId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessionRepo.Delete(conversationId.String())
	if err := s.windowRepo.Clear(ctx, conversationId); err != nil {
		s.logger.Warn("ChatService", "Message window clear failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}

func (s *chatService) ownedConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found or access denied")
	}
	return conversation, nil
}

func (s *chatService) loadSession(conversationId, userId uuid.UUID) *store.Session {
	session, found := s.sessionRepo.Get(conversationId.String())
	if !found {
		session = &store.Session{
			ID:     conversationId.String(),
			UserID: userId.String(),
		}
	}
	return session
}

func (s *chatService) publishGuardIssues(ctx context.Context, conversationId, messageId uuid.UUID, result *pipeline.Result) {
	if s.eventPublisher == nil || len(result.Guard.Issues) == 0 {
		return
	}

	issueTypes := make([]string, len(result.Guard.Issues))
	for i, issue := range result.Guard.Issues {
		issueTypes[i] = string(issue.Type)
	}

	evt := events.NewReplyFlaggedEvent(conversationId.String(), messageId.String(), issueTypes, result.Guard.HadCriticalIssues)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ChatService", "Failed to publish reply-flagged event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// scheduleConceptExtraction enqueues the mastery path for substantive
// turns. A publish failure is logged and dropped: the reply has already
// been delivered and must not be affected.
func (s *chatService) scheduleConceptExtraction(ctx context.Context, userId, conversationId, messageId uuid.UUID, content string, result *pipeline.Result) {
	if result.Classification.QueryType != classify.QueryTypeSubstantive {
		return
	}

	payload, err := json.Marshal(dto.PublishExtractConceptsMessage{
		UserId:         userId,
		ConversationId: conversationId,
		MessageId:      messageId,
		Content:        content,
	})
	if err != nil {
		s.logger.Error("ChatService", "Failed to marshal concept-extraction payload", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := s.conceptPublisher.Publish(ctx, payload); err != nil {
		s.logger.Error("ChatService", "Failed to schedule concept extraction", map[string]interface{}{
			"error":      err.Error(),
			"message_id": messageId,
		})
	}
}

func toModelHistory(messages []*entity.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := constantRole(m.Sender)
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	return history
}

func constantRole(sender string) string {
	if sender == entity.MessageSenderAssistant {
		return "assistant"
	}
	return "user"
}

const conversationTitleLimit = 60

// deriveTitle turns the opening user message into a conversation title,
// truncated on a rune boundary.
func deriveTitle(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	runes := []rune(title)
	if len(runes) <= conversationTitleLimit {
		return title
	}
	return strings.TrimSpace(string(runes[:conversationTitleLimit])) + "..."
}

// recentTexts feeds religion detection: prior user messages plus the
// current one, most-recent last.
func recentTexts(messages []*entity.Message, current string) []string {
	texts := make([]string, 0, len(messages)+1)
	for _, m := range messages {
		if m.Sender == entity.MessageSenderUser {
			texts = append(texts, m.Content)
		}
	}
	return append(texts, current)
}
