package conversationHandler

import (
	conversationService "UnicornGolang/internal/api/conversation/service"
	"UnicornGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConversationHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	conversationService conversationService.IConversationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs conversationService.IConversationService,
) *ConversationHandler {
	return &ConversationHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		conversationService: cs,
	}
}

func (h *ConversationHandler) Start(srv fiber.Router) {
	// The webhook is called by the messaging gateway, not by operators,
	// so it sits outside the token middleware.
	webhook := srv.Group("/webhook")
	webhook.Use(h.middleware.NewRateLimiter)
	webhook.Post("/message", h.HandleIncomingMessage)

	conversations := srv.Group("/conversations")
	conversations.Use(h.middleware.NewTokenMiddleware)
	conversations.Get("/:client_id/history", h.GetHistory)
}
