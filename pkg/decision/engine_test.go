package decision

import (
	"testing"
	"time"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), nil)
}

func baseRequest() Request {
	return Request{
		UserMessage:           "hola buenas tardes",
		CandidateReply:        "¡Hola! Con gusto te ayudo, ¿qué te gustaría saber?",
		Policy:                DefaultPolicy(),
		VoiceCreditsRemaining: 5000,
		VoiceUsageToday:       0,
		EvaluationTime:        time.Date(2025, time.March, 12, 11, 0, 0, 0, time.UTC),
	}
}

func TestDecide_NoCreditsGateWinsOverEverything(t *testing.T) {
	req := baseRequest()
	req.VoiceCreditsRemaining = 99
	req.Policy.ForcedModality = ForcedAlwaysVoice // must not matter

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityText || res.Reason != ReasonNoCredits {
		t.Errorf("got %s/%s, want text/no_credits", res.Modality, res.Reason)
	}
	if res.Score != nil {
		t.Errorf("gated result must not carry a score, got %v", *res.Score)
	}
}

func TestDecide_ForcedOff(t *testing.T) {
	req := baseRequest()
	req.Policy.ForcedModality = ForcedNeverVoice

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityText || res.Reason != ReasonClientForcedOff {
		t.Errorf("got %s/%s, want text/client_forced_off", res.Modality, res.Reason)
	}
}

func TestDecide_ForcedOnBypassesScoring(t *testing.T) {
	req := baseRequest()
	req.Policy.ForcedModality = ForcedAlwaysVoice
	// Content that would otherwise score far below threshold.
	req.UserMessage = "cuanto cuesta"
	req.CandidateReply = "Son $500, lista de 3 servicios disponibles"
	req.EvaluationTime = time.Date(2025, time.March, 12, 7, 0, 0, 0, time.UTC)

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityVoice || res.Reason != ReasonClientForcedOn {
		t.Errorf("got %s/%s, want voice/client_forced_on", res.Modality, res.Reason)
	}
	if res.Score != nil {
		t.Errorf("forced result must not carry a score")
	}
}

func TestDecide_DailyLimit(t *testing.T) {
	req := baseRequest()
	req.Policy.MaxVoicePerDay = 3
	req.VoiceUsageToday = 3

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityText || res.Reason != ReasonDailyLimitReached {
		t.Errorf("got %s/%s, want text/daily_limit_reached", res.Modality, res.Reason)
	}
}

func TestDecide_DailyLimitDefaultsWhenUnset(t *testing.T) {
	req := baseRequest()
	req.Policy.MaxVoicePerDay = 0
	req.VoiceUsageToday = 10 // default cap

	res := newTestEngine().Decide(req)
	if res.Reason != ReasonDailyLimitReached {
		t.Errorf("got %s, want daily_limit_reached with default cap", res.Reason)
	}
}

func TestDecide_OutsideCustomHours(t *testing.T) {
	req := baseRequest()
	req.Policy.BusinessHours = &HourWindow{Start: 9, End: 17}
	req.EvaluationTime = time.Date(2025, time.March, 12, 20, 0, 0, 0, time.UTC)

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityText || res.Reason != ReasonOutsideHours {
		t.Errorf("got %s/%s, want text/outside_hours", res.Modality, res.Reason)
	}
}

func TestDecide_GreetingScenarioChoosesVoice(t *testing.T) {
	// Greeting, empty history, default policy, 11:00: content 0.8, time 1.0,
	// context 0.4, preference 0.5 -> 0.4 + 0.2 + 0.08 + 0.05 = 0.73.
	req := baseRequest()

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityVoice || res.Reason != ReasonIntelligentDecision {
		t.Fatalf("got %s/%s, want voice/intelligent_decision", res.Modality, res.Reason)
	}
	if res.Score == nil || *res.Score < 0.6 {
		t.Fatalf("voice decision must carry score >= 0.6, got %v", res.Score)
	}
	if res.Breakdown == nil || !hasFactor(res.Breakdown.Factors, "greeting_detected") {
		t.Errorf("expected greeting_detected in breakdown, got %+v", res.Breakdown)
	}
	if !almostEqual(*res.Score, 0.73) {
		t.Errorf("score = %.4f, want 0.73", *res.Score)
	}
}

func TestDecide_PriceScenarioChoosesText(t *testing.T) {
	// Price-heavy reply at mid-day with neutral context: content clamps to 0,
	// time 1.0, context 0.4, preference 0.5 -> 0.33, below threshold.
	req := baseRequest()
	req.UserMessage = "cuánto cuesta el servicio"
	req.CandidateReply = "El servicio cuesta $500, tenemos 3 paquetes disponibles"

	res := newTestEngine().Decide(req)
	if res.Modality != ModalityText || res.Reason != ReasonBelowThreshold {
		t.Fatalf("got %s/%s, want text/below_threshold", res.Modality, res.Reason)
	}
	if res.Score == nil || *res.Score >= 0.6 {
		t.Fatalf("text decision should score below threshold, got %v", res.Score)
	}
	if !hasFactor(res.Breakdown.Factors, "contains_prices") {
		t.Errorf("expected contains_prices, got %v", res.Breakdown.Factors)
	}
}

func TestDecide_Deterministic(t *testing.T) {
	req := baseRequest()
	eng := newTestEngine()

	first := eng.Decide(req)
	for i := 0; i < 10; i++ {
		res := eng.Decide(req)
		if res.Modality != first.Modality || res.Reason != first.Reason {
			t.Fatalf("decision changed between identical calls: %+v vs %+v", res, first)
		}
		if (res.Score == nil) != (first.Score == nil) {
			t.Fatalf("score presence changed between identical calls")
		}
		if res.Score != nil && *res.Score != *first.Score {
			t.Fatalf("score changed between identical calls: %v vs %v", *res.Score, *first.Score)
		}
	}
}

func TestDecide_ScoreAlwaysInRange(t *testing.T) {
	messages := []string{"hola", "cuanto cuesta", "necesito ayuda urgente", ""}
	replies := []string{"", "Son $100", "quiero agendar tu cita hoy mismo"}
	hours := []int{0, 8, 11, 15, 18, 23}

	eng := newTestEngine()
	for _, m := range messages {
		for _, r := range replies {
			for _, h := range hours {
				req := baseRequest()
				req.UserMessage = m
				req.CandidateReply = r
				req.EvaluationTime = time.Date(2025, time.March, 12, h, 0, 0, 0, time.UTC)

				res := eng.Decide(req)
				if res.Score != nil && (*res.Score < 0 || *res.Score > 1) {
					t.Errorf("score %.4f out of range for %q/%q at %d", *res.Score, m, r, h)
				}
				if res.Modality == ModalityVoice && res.Score != nil && *res.Score < 0.6 {
					t.Errorf("voice decision with score %.4f below threshold", *res.Score)
				}
			}
		}
	}
}

func TestDecide_ScorerPanicFallsBackToText(t *testing.T) {
	eng := newTestEngine()
	eng.contextFn = func([]Turn) float64 { panic("bad history window") }

	res := eng.Decide(baseRequest())
	if res.Modality != ModalityText || res.Reason != ReasonError {
		t.Errorf("got %s/%s, want text/error", res.Modality, res.Reason)
	}
	if res.Score != nil {
		t.Errorf("recovered result must not carry a score, got %v", *res.Score)
	}
}

func TestExplain(t *testing.T) {
	res := newTestEngine().Decide(baseRequest())
	out := Explain(res)
	if out == "" {
		t.Fatal("expected a non-empty explanation")
	}
	for _, want := range []string{"VOICE", "score", "greeting_detected"} {
		if !containsStr(out, want) {
			t.Errorf("explanation missing %q:\n%s", want, out)
		}
	}
}

func containsStr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
