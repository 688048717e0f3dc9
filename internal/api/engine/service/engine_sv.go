package engineService

import (
	"UnicornGolang/internal/api/engine"
	contextPkg "UnicornGolang/pkg/context"
	"UnicornGolang/pkg/decision"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *engineService) Decide(ctx context.Context, req engine.DecideRequest) (*engine.DecideResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	evaluationTime := time.Now()
	if req.EvaluationTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.EvaluationTime)
		if err != nil {
			return nil, engine.ErrInvalidEvaluationTime
		}
		evaluationTime = parsed
	}

	if (req.HoursStart == nil) != (req.HoursEnd == nil) {
		return nil, engine.ErrInvalidHourWindow
	}

	policy := decision.DefaultPolicy()
	policy.ForcedModality = decision.ForcedModality(req.ForcedModality)
	if req.AudioPreference != nil {
		policy.AudioPreference = *req.AudioPreference
	}
	if req.MaxVoicePerDay > 0 {
		policy.MaxVoicePerDay = req.MaxVoicePerDay
	}
	if req.HoursStart != nil && req.HoursEnd != nil {
		policy.BusinessHours = &decision.HourWindow{Start: *req.HoursStart, End: *req.HoursEnd}
	}

	turns := make([]decision.Turn, 0, len(req.RecentTurns))
	for _, t := range req.RecentTurns {
		modality := decision.ModalityText
		if t.Modality != "" {
			modality = decision.Modality(t.Modality)
		}
		turns = append(turns, decision.Turn{
			Speaker:  decision.Speaker(t.Speaker),
			Text:     t.Text,
			Modality: modality,
		})
	}

	result := s.engine.Decide(decision.Request{
		UserMessage:           req.UserMessage,
		CandidateReply:        req.CandidateReply,
		Policy:                policy,
		RecentTurns:           turns,
		VoiceCreditsRemaining: req.Credits,
		VoiceUsageToday:       req.UsageToday,
		EvaluationTime:        evaluationTime,
	})

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"modality":   result.Modality,
		"reason":     result.Reason,
	}).Debug("Dry-run decision computed")

	return &engine.DecideResponse{
		Modality:    string(result.Modality),
		Reason:      string(result.Reason),
		Score:       result.Score,
		Breakdown:   result.Breakdown,
		Explanation: decision.Explain(result),
	}, nil
}

func (s *engineService) CacheStats(_ context.Context) (*engine.CacheStatsResponse, error) {
	return &engine.CacheStatsResponse{
		Cache: s.audioManager.CacheStats(),
	}, nil
}
