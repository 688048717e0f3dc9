package decision

import "strings"

// FunnelStage is a coarse classification of where the conversation sits
// relative to a sale, inferred from recent message content.
type FunnelStage string

const (
	StageAwareness     FunnelStage = "awareness"
	StageConsideration FunnelStage = "consideration"
	StageDecision      FunnelStage = "decision"
)

// recentWindow is how many trailing turns the context scorer inspects.
const recentWindow = 5

// ContextScore rates the recent conversation history. Empty history gives a
// mildly voice-favorable 0.4 (first contact reads better as a personal
// touch). Otherwise modality alternation is encouraged: a window with voice
// replies but no text replies pushes toward text, and vice versa. The funnel
// stage of the window shifts the score on top of that.
func ContextScore(turns []Turn) float64 {
	if len(turns) == 0 {
		return 0.4
	}

	recent := turns
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	score := 0.3

	hasVoice, hasText := false, false
	for _, t := range recent {
		if t.Speaker != SpeakerBot {
			continue
		}
		switch t.Modality {
		case ModalityVoice:
			hasVoice = true
		case ModalityText:
			hasText = true
		}
	}
	if hasVoice && !hasText {
		score -= 0.2
	} else if hasText && !hasVoice {
		score += 0.2
	}

	switch DetectFunnelStage(recent) {
	case StageDecision:
		score += 0.3
	case StageConsideration:
		score -= 0.1
	default:
		score += 0.1
	}

	return clamp01(score)
}

// DetectFunnelStage scans the combined text of the given turns. Closing or
// scheduling language wins over price/comparison language.
func DetectFunnelStage(turns []Turn) FunnelStage {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, t.Text)
	}
	all := strings.ToLower(strings.Join(parts, " "))

	if reClosing.MatchString(all) || reSchedule.MatchString(all) {
		return StageDecision
	}
	if rePrices.MatchString(all) || reComparison.MatchString(all) {
		return StageConsideration
	}
	return StageAwareness
}
