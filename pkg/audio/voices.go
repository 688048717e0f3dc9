package audio

// MessageType classifies the outgoing reply so the voice tuning can match
// the conversational moment.
type MessageType string

const (
	MessageGeneral   MessageType = "general"
	MessageGreeting  MessageType = "greeting"
	MessageClosing   MessageType = "closing"
	MessageObjection MessageType = "objection"
	MessageUrgency   MessageType = "urgency"
	MessageTechnical MessageType = "technical"
)

// Voice catalog. IDs are ElevenLabs prebuilt voices.
var voiceCatalog = map[string]string{
	"professional": "pNInz6obpgDQGcFmaJgB",
	"friendly":     "21m00Tcm4TlvDq8ikWAM",
	"energetic":    "AZnzlk1XvdvUeBnXmlld",
	"calm":         "EXAVITQu4vr4xnSDxMaL",
}

const defaultVoiceStyle = "professional"

// SelectVoice resolves a client voice preference to a concrete voice ID.
// Greetings and closings without an explicit preference get the friendly
// voice; urgent messages get the energetic one.
func SelectVoice(preferred string, messageType MessageType) string {
	if id, ok := voiceCatalog[preferred]; ok {
		return id
	}
	switch messageType {
	case MessageGreeting, MessageClosing:
		return voiceCatalog["friendly"]
	case MessageUrgency:
		return voiceCatalog["energetic"]
	case MessageObjection:
		return voiceCatalog["calm"]
	default:
		return voiceCatalog[defaultVoiceStyle]
	}
}

// OptimizeSettings tunes the base settings per message type: greetings and
// closings get more expressive style, objection handling gets steadier
// delivery, urgency trades stability for energy, technical content maximizes
// clarity.
func OptimizeSettings(messageType MessageType) VoiceSettings {
	settings := DefaultVoiceSettings()
	switch messageType {
	case MessageGreeting, MessageClosing:
		settings.Style = 0.7
	case MessageObjection:
		settings.Stability = 0.8
		settings.Style = 0.3
	case MessageUrgency:
		settings.Stability = 0.3
		settings.Style = 0.8
	case MessageTechnical:
		settings.Stability = 0.9
		settings.Style = 0.2
	}
	return settings
}

// MessageTypeFromFactors maps decision-engine content factors onto a
// message type. First match wins in priority order.
func MessageTypeFromFactors(factors []string) MessageType {
	set := make(map[string]bool, len(factors))
	for _, f := range factors {
		set[f] = true
	}
	switch {
	case set["greeting_detected"]:
		return MessageGreeting
	case set["objection_handling"]:
		return MessageObjection
	case set["closing_opportunity"]:
		return MessageClosing
	case set["emotional_content"]:
		return MessageUrgency
	case set["contains_numbers"] || set["contains_prices"]:
		return MessageTechnical
	default:
		return MessageGeneral
	}
}
