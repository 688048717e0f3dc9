package decision

import "time"

type Modality string

const (
	ModalityText  Modality = "text"
	ModalityVoice Modality = "voice"
)

type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// ForcedModality is a per-client hard override. Empty means no override.
type ForcedModality string

const (
	ForcedNone        ForcedModality = ""
	ForcedAlwaysVoice ForcedModality = "always"
	ForcedNeverVoice  ForcedModality = "never"
)

type ReasonCode string

const (
	ReasonNoCredits           ReasonCode = "no_credits"
	ReasonClientForcedOff     ReasonCode = "client_forced_off"
	ReasonClientForcedOn      ReasonCode = "client_forced_on"
	ReasonDailyLimitReached   ReasonCode = "daily_limit_reached"
	ReasonOutsideHours        ReasonCode = "outside_hours"
	ReasonBelowThreshold      ReasonCode = "below_threshold"
	ReasonIntelligentDecision ReasonCode = "intelligent_decision"
	ReasonError               ReasonCode = "error"
)

// HourWindow is an inclusive [Start, End] hour range in the client's
// operating timezone.
type HourWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ClientPolicy is the per-client voice configuration, read-only to the
// engine. Use DefaultPolicy as the base when the configuration collaborator
// has no record for the client; the engine falls back to
// Config.DefaultMaxVoicePerDay when MaxVoicePerDay is not positive.
type ClientPolicy struct {
	ForcedModality  ForcedModality `json:"forced_modality"`
	AudioPreference float64        `json:"audio_preference"`
	MaxVoicePerDay  int            `json:"max_voice_per_day"`
	BusinessHours   *HourWindow    `json:"business_hours,omitempty"`
}

func DefaultPolicy() ClientPolicy {
	return ClientPolicy{
		AudioPreference: 0.5,
		MaxVoicePerDay:  10,
	}
}

// Turn is one historical exchange, chronological order, most recent last.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Modality  Modality  `json:"modality"`
	Timestamp time.Time `json:"timestamp"`
}

// Request is the immutable input bundle for one outgoing reply.
type Request struct {
	UserMessage           string       `json:"user_message"`
	CandidateReply        string       `json:"candidate_reply"`
	Policy                ClientPolicy `json:"policy"`
	RecentTurns           []Turn       `json:"recent_turns"`
	VoiceCreditsRemaining int          `json:"voice_credits_remaining"`
	VoiceUsageToday       int          `json:"voice_usage_today"`
	EvaluationTime        time.Time    `json:"evaluation_time"`
}

// Breakdown explains how the weighted score was assembled.
type Breakdown struct {
	ContentScore float64  `json:"content_score"`
	TimeScore    float64  `json:"time_score"`
	ContextScore float64  `json:"context_score"`
	Factors      []string `json:"factors"`
	ReplyLength  int      `json:"reply_length"`
}

type Result struct {
	Modality  Modality   `json:"modality"`
	Reason    ReasonCode `json:"reason"`
	Score     *float64   `json:"score,omitempty"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

func (r Result) UseVoice() bool {
	return r.Modality == ModalityVoice
}

// Config carries the scoring constants. The defaults are empirically chosen
// values carried over from production tuning; they are injectable, not
// invariants.
type Config struct {
	ContentWeight float64
	TimeWeight    float64
	ContextWeight float64
	ClientWeight  float64

	Threshold             float64
	MinCredits            int
	DefaultMaxVoicePerDay int

	LongReplyChars   int
	LongReplyPenalty float64
}

func DefaultConfig() Config {
	return Config{
		ContentWeight:         0.5,
		TimeWeight:            0.2,
		ContextWeight:         0.2,
		ClientWeight:          0.1,
		Threshold:             0.6,
		MinCredits:            100,
		DefaultMaxVoicePerDay: 10,
		LongReplyChars:        300,
		LongReplyPenalty:      0.2,
	}
}
