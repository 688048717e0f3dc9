package decision

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Engine decides the delivery modality for one outgoing reply. Decide is
// deterministic given identical inputs; the evaluation clock comes from the
// request, never from the engine. Safe for concurrent use.
type Engine struct {
	cfg Config
	log *logrus.Logger

	contentFn func(userMessage, candidateReply string, cfg Config) ContentAnalysis
	timeFn    func(req Request) float64
	contextFn func(turns []Turn) float64
}

func NewEngine(cfg Config, log *logrus.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		log:       log,
		contentFn: AnalyzeContent,
		timeFn:    TimeScore,
		contextFn: ContextScore,
	}
}

// Decide runs the gates in order (first applicable wins), then the weighted
// scoring. Any panic in a sub-scorer is downgraded to a safe text result:
// failing open to text is always acceptable, crashing the host never is.
func (e *Engine) Decide(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if e.log != nil {
				e.log.WithFields(logrus.Fields{
					"panic": fmt.Sprint(r),
				}).Error("Modality decision failed, falling back to text")
			}
			res = Result{Modality: ModalityText, Reason: ReasonError}
		}
	}()

	if req.VoiceCreditsRemaining < e.cfg.MinCredits {
		return Result{Modality: ModalityText, Reason: ReasonNoCredits}
	}

	switch req.Policy.ForcedModality {
	case ForcedNeverVoice:
		return Result{Modality: ModalityText, Reason: ReasonClientForcedOff}
	case ForcedAlwaysVoice:
		return Result{Modality: ModalityVoice, Reason: ReasonClientForcedOn}
	}

	maxPerDay := req.Policy.MaxVoicePerDay
	if maxPerDay <= 0 {
		maxPerDay = e.cfg.DefaultMaxVoicePerDay
	}
	if req.VoiceUsageToday >= maxPerDay {
		return Result{Modality: ModalityText, Reason: ReasonDailyLimitReached}
	}

	timeScore := e.timeFn(req)
	if timeScore == 0 {
		return Result{Modality: ModalityText, Reason: ReasonOutsideHours}
	}

	content := e.contentFn(req.UserMessage, req.CandidateReply, e.cfg)
	contextScore := e.contextFn(req.RecentTurns)

	finalScore := content.Score*e.cfg.ContentWeight +
		timeScore*e.cfg.TimeWeight +
		contextScore*e.cfg.ContextWeight +
		clamp01(req.Policy.AudioPreference)*e.cfg.ClientWeight

	modality := ModalityText
	reason := ReasonBelowThreshold
	if finalScore >= e.cfg.Threshold {
		modality = ModalityVoice
		reason = ReasonIntelligentDecision
	}

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"score":         finalScore,
			"threshold":     e.cfg.Threshold,
			"content_score": content.Score,
			"time_score":    timeScore,
			"context_score": contextScore,
			"factors":       content.Factors,
			"modality":      modality,
		}).Debug("Modality decision computed")
	}

	return Result{
		Modality: modality,
		Reason:   reason,
		Score:    &finalScore,
		Breakdown: &Breakdown{
			ContentScore: content.Score,
			TimeScore:    timeScore,
			ContextScore: contextScore,
			Factors:      content.Factors,
			ReplyLength:  content.ReplyLength,
		},
	}
}

// Explain renders a result as a human-readable summary for the ops surface.
func Explain(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "decision: %s (%s)", strings.ToUpper(string(res.Modality)), res.Reason)
	if res.Score != nil {
		fmt.Fprintf(&b, "\nscore: %.2f/1.0", *res.Score)
	}
	if res.Breakdown != nil {
		factors := "neutral"
		if len(res.Breakdown.Factors) > 0 {
			factors = strings.Join(res.Breakdown.Factors, ", ")
		}
		fmt.Fprintf(&b, "\ncontent factors: %s", factors)
		fmt.Fprintf(&b, "\nreply length: %d chars", res.Breakdown.ReplyLength)
	}
	return b.String()
}
