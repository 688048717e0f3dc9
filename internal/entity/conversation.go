package entity

import (
	"time"
)

type ConversationTurn struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	UserPhone      string    `json:"user_phone"`
	ProfileName    string    `json:"profile_name"`
	Speaker        string    `json:"speaker"` // "user" or "bot"
	Message        string    `json:"message"`
	Modality       string    `json:"modality"` // "text" or "voice"
	AudioURL       string    `json:"audio_url"`
	DecisionReason string    `json:"decision_reason"`
	DecisionScore  *float64  `json:"decision_score,omitempty"`
	Processed      bool      `json:"processed"`
	CreatedAt      time.Time `json:"created_at"`
}
