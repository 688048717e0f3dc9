package engine

import (
	"UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/decision"
)

// DecideRequest is a dry-run decision probe: every input the engine sees
// in production is supplied explicitly, nothing is sent to the customer.
type DecideRequest struct {
	UserMessage     string      `json:"user_message" validate:"required,max=4096"`
	CandidateReply  string      `json:"candidate_reply" validate:"required,max=4096"`
	ForcedModality  string      `json:"forced_modality" validate:"omitempty,oneof=always never"`
	AudioPreference *float64    `json:"audio_preference" validate:"omitempty,gte=0,lte=1"`
	MaxVoicePerDay  int         `json:"max_voice_per_day" validate:"omitempty,gte=0"`
	HoursStart      *int        `json:"hours_start" validate:"omitempty,gte=0,lte=23"`
	HoursEnd        *int        `json:"hours_end" validate:"omitempty,gte=0,lte=23"`
	Credits         int         `json:"credits"`
	UsageToday      int         `json:"usage_today"`
	EvaluationTime  string      `json:"evaluation_time" validate:"omitempty"` // RFC3339, defaults to now
	RecentTurns     []TurnInput `json:"recent_turns" validate:"omitempty,dive"`
}

type TurnInput struct {
	Speaker  string `json:"speaker" validate:"required,oneof=user bot"`
	Text     string `json:"text" validate:"required"`
	Modality string `json:"modality" validate:"omitempty,oneof=text voice"`
}

type DecideResponse struct {
	Modality    string              `json:"modality"`
	Reason      string              `json:"reason"`
	Score       *float64            `json:"score,omitempty"`
	Breakdown   *decision.Breakdown `json:"breakdown,omitempty"`
	Explanation string              `json:"explanation"`
}

type CacheStatsResponse struct {
	Cache audio.CacheStats `json:"cache"`
}
