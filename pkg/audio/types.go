package audio

import "context"

// VoiceSettings mirrors the synthesis tuning knobs accepted by the
// upstream voice APIs.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.5,
		SpeakerBoost:    true,
	}
}

// Provider is one speech-synthesis backend. Synthesize returns encoded
// audio bytes (mpeg for every current implementation).
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text, voiceID string, settings VoiceSettings) ([]byte, error)
}

// SynthResult is what the manager hands back to callers.
type SynthResult struct {
	Audio      []byte `json:"-"`
	FromCache  bool   `json:"from_cache"`
	TextLength int    `json:"text_length"`
}

// CreditStatus summarizes the remaining synthesis quota on the account.
type CreditStatus struct {
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	HasCredit bool `json:"has_credit"`
}
