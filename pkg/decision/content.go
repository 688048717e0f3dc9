package decision

import "strings"

// ContentAnalysis is the voice-suitability verdict for one exchange.
type ContentAnalysis struct {
	Score       float64  `json:"score"`
	Factors     []string `json:"factors"`
	ReplyLength int      `json:"reply_length"`
}

// AnalyzeContent scores a (user message, candidate reply) pair for voice
// suitability. Pure function: starts at a neutral 0.5, applies the signed
// weight of every matching category from the classification table, penalizes
// long replies, and clamps to [0,1]. Missing text behaves as an empty string.
func AnalyzeContent(userMessage, candidateReply string, cfg Config) ContentAnalysis {
	userLower := strings.ToLower(userMessage)
	replyLower := strings.ToLower(candidateReply)

	score := 0.5
	factors := []string{}

	if len(candidateReply) > cfg.LongReplyChars {
		score -= cfg.LongReplyPenalty
		factors = append(factors, "response_too_long")
	}

	for _, c := range contentCategories {
		matched := false
		switch c.scope {
		case scopeReply:
			matched = c.re.MatchString(replyLower)
		case scopeUser:
			matched = c.re.MatchString(userLower)
		case scopeEither:
			matched = c.re.MatchString(userLower) || c.re.MatchString(replyLower)
		}
		if matched {
			score += c.weight
			factors = append(factors, c.factor)
		}
	}

	return ContentAnalysis{
		Score:       clamp01(score),
		Factors:     factors,
		ReplyLength: len(candidateReply),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
