package conversation

import "UnicornGolang/pkg/response"

var (
	ErrClientNotFound       = response.NewError(404, "client not found")
	ErrClientInactive       = response.NewError(403, "client account is inactive")
	ErrInvalidPhoneNumber   = response.NewError(400, "invalid phone number")
	ErrEmptyMessage         = response.NewError(400, "message body is empty")
	ErrReplyGeneration      = response.NewError(502, "failed to generate reply")
	ErrDeliveryFailed       = response.NewError(502, "failed to deliver message")
	ErrConversationNotFound = response.NewError(404, "conversation not found")
)
