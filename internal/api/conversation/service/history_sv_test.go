package conversationService

import (
	"UnicornGolang/internal/entity"
	"UnicornGolang/pkg/decision"
	"fmt"
	"strings"
	"testing"
	"time"
)

func storedTurn(id int, speaker, message string, createdAt time.Time) entity.ConversationTurn {
	return entity.ConversationTurn{
		ID:        fmt.Sprintf("turn-%03d", id),
		Speaker:   speaker,
		Message:   message,
		Modality:  "text",
		CreatedAt: createdAt,
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	client := entity.Client{
		Name:          "Clinica Sonrisa",
		InitialPrompt: "Eres el asistente de la clinica dental.",
		ServiceList:   "- Limpieza dental: $500\n- Blanqueamiento: $1200",
	}

	prompt := buildSystemPrompt(client)

	for _, want := range []string{
		"Eres el asistente de la clinica dental.",
		"Servicios disponibles:",
		"Blanqueamiento: $1200",
		"Reglas:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSystemPrompt_DefaultPersona(t *testing.T) {
	prompt := buildSystemPrompt(entity.Client{Name: "Clinica Sonrisa"})
	if !strings.Contains(prompt, "Clinica Sonrisa") {
		t.Errorf("default persona should name the client:\n%s", prompt)
	}
}

func TestBuildCompletionHistory_ChronologicalWindow(t *testing.T) {
	now := time.Now()
	// Repository order: newest first.
	var stored []entity.ConversationTurn
	for i := 9; i >= 0; i-- {
		speaker := "user"
		if i%2 == 1 {
			speaker = "bot"
		}
		stored = append(stored, storedTurn(i, speaker, fmt.Sprintf("mensaje %d", i), now.Add(time.Duration(i)*time.Minute)))
	}

	messages := buildCompletionHistory(stored)

	if len(messages) != historyWindow {
		t.Fatalf("got %d messages, want %d", len(messages), historyWindow)
	}
	// Oldest of the kept window comes first.
	if messages[0].Content != "mensaje 4" {
		t.Errorf("first message = %q, want mensaje 4", messages[0].Content)
	}
	if messages[len(messages)-1].Content != "mensaje 9" {
		t.Errorf("last message = %q, want mensaje 9", messages[len(messages)-1].Content)
	}
	for _, msg := range messages {
		if msg.Role != "user" && msg.Role != "assistant" {
			t.Errorf("unexpected role %q", msg.Role)
		}
	}
	if messages[len(messages)-1].Role != "assistant" {
		t.Errorf("turn 9 was a bot turn, got role %q", messages[len(messages)-1].Role)
	}
}

func TestDecisionTurns_PreservesModalityAndOrder(t *testing.T) {
	now := time.Now()
	stored := []entity.ConversationTurn{
		{Speaker: "bot", Message: "te explico por audio", Modality: "voice", CreatedAt: now},
		{Speaker: "user", Message: "hola", Modality: "text", CreatedAt: now.Add(-time.Minute)},
	}

	turns := decisionTurns(stored)

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Speaker != decision.SpeakerUser {
		t.Errorf("oldest turn should come first, got %s", turns[0].Speaker)
	}
	if turns[1].Modality != decision.ModalityVoice {
		t.Errorf("bot turn modality = %s, want voice", turns[1].Modality)
	}
}

func TestPolicyForClient_TierDefaults(t *testing.T) {
	cases := []struct {
		tier       string
		preference float64
		maxPerDay  int
	}{
		{entity.TierPremium, 0.8, 20},
		{entity.TierStandard, 0.5, 10},
		{entity.TierBasic, 0.2, 5},
	}
	for _, c := range cases {
		policy := policyForClient(entity.Client{Tier: c.tier})
		if policy.AudioPreference != c.preference || policy.MaxVoicePerDay != c.maxPerDay {
			t.Errorf("tier %s: got %.1f/%d, want %.1f/%d",
				c.tier, policy.AudioPreference, policy.MaxVoicePerDay, c.preference, c.maxPerDay)
		}
	}
}

func TestPolicyForClient_OverridesBeatTier(t *testing.T) {
	preference := 0.9
	maxPerDay := 3
	start, end := 10, 14

	policy := policyForClient(entity.Client{
		Tier:            entity.TierBasic,
		ForcedModality:  "never",
		AudioPreference: &preference,
		MaxVoicePerDay:  &maxPerDay,
		AudioHoursStart: &start,
		AudioHoursEnd:   &end,
	})

	if policy.AudioPreference != 0.9 || policy.MaxVoicePerDay != 3 {
		t.Errorf("explicit overrides lost: %+v", policy)
	}
	if policy.ForcedModality != decision.ForcedNeverVoice {
		t.Errorf("forced modality = %q, want never", policy.ForcedModality)
	}
	if policy.BusinessHours == nil || policy.BusinessHours.Start != 10 || policy.BusinessHours.End != 14 {
		t.Errorf("hour window lost: %+v", policy.BusinessHours)
	}
}

func TestPolicyForClient_HalfWindowIgnored(t *testing.T) {
	start := 10
	policy := policyForClient(entity.Client{AudioHoursStart: &start})
	if policy.BusinessHours != nil {
		t.Errorf("a lone start hour must not create a window, got %+v", policy.BusinessHours)
	}
}
