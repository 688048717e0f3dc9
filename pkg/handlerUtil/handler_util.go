package handlerUtil

import (
	"UnicornGolang/internal/api/conversation"
	"UnicornGolang/internal/api/engine"
	audioPkg "UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/log"
	"UnicornGolang/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Conversation domain errors
	if errors.Is(err, conversation.ErrClientNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Client not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Client not found",
			"code":    "CLIENT_NOT_FOUND",
		})
	}

	if errors.Is(err, conversation.ErrClientInactive) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Client account inactive")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Client account is inactive",
			"code":    "CLIENT_INACTIVE",
		})
	}

	if errors.Is(err, conversation.ErrInvalidPhoneNumber) || errors.Is(err, conversation.ErrEmptyMessage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Rejected webhook payload")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"code":    "INVALID_PAYLOAD",
		})
	}

	if errors.Is(err, conversation.ErrReplyGeneration) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Reply generation failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Failed to generate reply",
			"code":    "REPLY_GENERATION_FAILED",
		})
	}

	if errors.Is(err, conversation.ErrDeliveryFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Message delivery failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Failed to deliver message",
			"code":    "DELIVERY_FAILED",
		})
	}

	if errors.Is(err, conversation.ErrConversationNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Conversation not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Conversation not found",
			"code":    "CONVERSATION_NOT_FOUND",
		})
	}

	// Engine domain errors
	if errors.Is(err, engine.ErrInvalidEvaluationTime) || errors.Is(err, engine.ErrInvalidHourWindow) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid dry-run request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"code":    "INVALID_DECISION_REQUEST",
		})
	}

	// Synthesis errors surfacing from the audio pipeline
	if errors.Is(err, audioPkg.ErrEmptyText) || errors.Is(err, audioPkg.ErrTextTooShort) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Text unsuitable for synthesis")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"code":    "INVALID_SYNTHESIS_TEXT",
		})
	}

	var providerErr *audioPkg.ProviderError
	if errors.As(err, &providerErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"provider":   providerErr.Provider,
			"status":     providerErr.Status,
			"path":       path,
			"operation":  operation,
		}).Error("Synthesis provider error")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Speech synthesis failed",
			"code":    "SYNTHESIS_FAILED",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
