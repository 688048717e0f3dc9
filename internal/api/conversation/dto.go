package conversation

import (
	"time"
)

// WebhookRequest is the inbound message payload. Field names follow the
// Twilio-style form encoding the messaging gateway posts.
type WebhookRequest struct {
	Body        string `json:"Body" form:"Body" validate:"required,min=1,max=4096"`
	From        string `json:"From" form:"From" validate:"required"`
	ProfileName string `json:"ProfileName" form:"ProfileName"`
	To          string `json:"To" form:"To"`
}

type WebhookResponse struct {
	ReplyText string   `json:"reply_text"`
	Modality  string   `json:"modality"`
	Reason    string   `json:"reason"`
	Score     *float64 `json:"score,omitempty"`
	AudioURL  string   `json:"audio_url,omitempty"`
	FromCache bool     `json:"from_cache,omitempty"`
}

type HistoryItem struct {
	ID        string    `json:"id"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Modality  string    `json:"modality"`
	AudioURL  string    `json:"audio_url,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Score     *float64  `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	ClientID string        `json:"client_id"`
	Phone    string        `json:"phone"`
	Turns    []HistoryItem `json:"turns"`
	Total    int           `json:"total"`
}
