package conversationHandler

import (
	"UnicornGolang/internal/api/conversation"
	contextPkg "UnicornGolang/pkg/context"
	"UnicornGolang/pkg/handlerUtil"
	"UnicornGolang/pkg/log"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ConversationHandler) HandleIncomingMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 45*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing incoming message webhook")

	var req conversation.WebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("invalid webhook payload"), ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.conversationService.HandleIncomingMessage(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "handle_incoming_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ConversationHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	clientID := ctx.Params("client_id")
	userPhone := ctx.Query("phone")
	if clientID == "" || userPhone == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("client_id and phone are required"), ctx.Path())
	}

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	response, err := h.conversationService.GetHistory(c, clientID, userPhone, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}
