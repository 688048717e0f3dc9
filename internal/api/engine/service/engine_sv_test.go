package engineService

import (
	"UnicornGolang/internal/api/engine"
	"UnicornGolang/pkg/audio"
	"UnicornGolang/pkg/decision"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

type silentProvider struct{}

func (silentProvider) Name() string { return "silent" }
func (silentProvider) Synthesize(context.Context, string, string, audio.VoiceSettings) ([]byte, error) {
	return []byte("audio"), nil
}

func newTestService(t *testing.T) IEngineService {
	t.Helper()
	manager, err := audio.NewManager(audio.ManagerConfig{Provider: silentProvider{}})
	if err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	return New(logger, decision.NewEngine(decision.DefaultConfig(), logger), manager)
}

func TestDecide_DryRun(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Decide(context.Background(), engine.DecideRequest{
		UserMessage:    "hola buenas tardes",
		CandidateReply: "¡Hola! ¿En qué puedo ayudarte?",
		Credits:        5000,
		EvaluationTime: "2025-03-12T11:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Modality != "voice" {
		t.Errorf("modality = %s, want voice", resp.Modality)
	}
	if resp.Explanation == "" {
		t.Error("expected a rendered explanation")
	}
	if resp.Breakdown == nil {
		t.Error("expected a score breakdown")
	}
}

func TestDecide_ForcedModality(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Decide(context.Background(), engine.DecideRequest{
		UserMessage:    "cuanto cuesta",
		CandidateReply: "Son $500 el paquete completo",
		ForcedModality: "always",
		Credits:        5000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Modality != "voice" || resp.Reason != "client_forced_on" {
		t.Errorf("got %s/%s, want voice/client_forced_on", resp.Modality, resp.Reason)
	}
}

func TestDecide_RejectsBadEvaluationTime(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Decide(context.Background(), engine.DecideRequest{
		UserMessage:    "hola",
		CandidateReply: "hola, bienvenido",
		Credits:        5000,
		EvaluationTime: "yesterday at noon",
	})
	if !errors.Is(err, engine.ErrInvalidEvaluationTime) {
		t.Errorf("got %v, want ErrInvalidEvaluationTime", err)
	}
}

func TestDecide_RejectsHalfHourWindow(t *testing.T) {
	svc := newTestService(t)
	start := 9

	_, err := svc.Decide(context.Background(), engine.DecideRequest{
		UserMessage:    "hola",
		CandidateReply: "hola, bienvenido",
		Credits:        5000,
		HoursStart:     &start,
	})
	if !errors.Is(err, engine.ErrInvalidHourWindow) {
		t.Errorf("got %v, want ErrInvalidHourWindow", err)
	}
}

func TestCacheStats(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.CacheStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Cache.Capacity == 0 {
		t.Errorf("expected a configured cache capacity, got %+v", resp.Cache)
	}
}
