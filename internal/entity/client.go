package entity

import (
	"time"
)

const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// Client is one business account on the platform. The pointer fields are
// per-client policy overrides; nil means "use the tier default".
type Client struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PhoneNumber     string    `json:"phone_number"`
	Tier            string    `json:"tier"`
	ForcedModality  string    `json:"forced_modality"` // "", "always" or "never"
	AudioPreference *float64  `json:"audio_preference,omitempty"`
	MaxVoicePerDay  *int      `json:"max_voice_per_day,omitempty"`
	AudioHoursStart *int      `json:"audio_hours_start,omitempty"`
	AudioHoursEnd   *int      `json:"audio_hours_end,omitempty"`
	VoicePreference string    `json:"voice_preference"`
	InitialPrompt   string    `json:"initial_prompt"`
	ServiceList     string    `json:"service_list"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
