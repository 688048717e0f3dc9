package conversationService

import (
	"UnicornGolang/internal/api/conversation"
	conversationRepository "UnicornGolang/internal/api/conversation/repository"
	"UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/decision"
	"UnicornGolang/pkg/gemini"
	chatGPT "UnicornGolang/pkg/openai"
	redisPkg "UnicornGolang/pkg/redis"
	"UnicornGolang/pkg/s3"
	"UnicornGolang/pkg/utils"
	"UnicornGolang/pkg/whatsapp"
	"context"

	"github.com/sirupsen/logrus"
)

type IConversationService interface {
	HandleIncomingMessage(ctx context.Context, req conversation.WebhookRequest) (*conversation.WebhookResponse, error)
	GetHistory(ctx context.Context, clientID, userPhone string, page, limit int) (*conversation.HistoryResponse, error)
	ProcessPendingTurns(ctx context.Context) error
	StartPendingWorker(ctx context.Context)
}

// Completion generates the next assistant turn from the client persona,
// the recent history and the new user message.
type Completion interface {
	GenerateReply(ctx context.Context, systemPrompt string, history []chatGPT.ConversationMessage, userMessage string) (string, error)
}

// CreditChecker reports the remaining synthesis quota. The ElevenLabs
// client implements it; deployments on the hosted Google model pass nil
// and skip the credit gate.
type CreditChecker interface {
	CheckCredits(ctx context.Context) (audio.CreditStatus, error)
}

type conversationService struct {
	log          *logrus.Logger
	repo         conversationRepository.Repository
	engine       *decision.Engine
	audioManager *audio.Manager
	credits      CreditChecker
	redis        redisPkg.IRedis
	s3Client     s3.ItfS3
	whatsapp     whatsapp.IWhatsappSender
	completion   Completion
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	repo conversationRepository.Repository,
	engine *decision.Engine,
	audioManager *audio.Manager,
	credits CreditChecker,
	redis redisPkg.IRedis,
	s3Client s3.ItfS3,
	whatsappSender whatsapp.IWhatsappSender,
	completion Completion,
	utilsPkg utils.IUtils,
) IConversationService {
	return &conversationService{
		log:          log,
		repo:         repo,
		engine:       engine,
		audioManager: audioManager,
		credits:      credits,
		redis:        redis,
		s3Client:     s3Client,
		whatsapp:     whatsappSender,
		completion:   completion,
		utils:        utilsPkg,
	}
}

// NewGeminiCompletion adapts the Gemini client to the Completion interface,
// translating the OpenAI-style "assistant" role to Gemini's "model".
func NewGeminiCompletion(client gemini.IGemini) Completion {
	return &geminiCompletion{client: client}
}

type geminiCompletion struct {
	client gemini.IGemini
}

func (g *geminiCompletion) GenerateReply(ctx context.Context, systemPrompt string, history []chatGPT.ConversationMessage, userMessage string) (string, error) {
	messages := make([]gemini.Message, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		messages = append(messages, gemini.Message{Role: role, Content: msg.Content})
	}
	return g.client.GenerateReply(ctx, systemPrompt, messages, userMessage)
}
