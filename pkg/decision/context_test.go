package decision

import (
	"math"
	"testing"
	"time"
)

func botTurn(text string, m Modality) Turn {
	return Turn{Speaker: SpeakerBot, Text: text, Modality: m, Timestamp: time.Now()}
}

func userTurn(text string) Turn {
	return Turn{Speaker: SpeakerUser, Text: text, Modality: ModalityText, Timestamp: time.Now()}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestContextScore_EmptyHistoryIsColdStartBias(t *testing.T) {
	if got := ContextScore(nil); !almostEqual(got, 0.4) {
		t.Errorf("empty history should score 0.4, got %.2f", got)
	}
}

func TestContextScore_VoiceOnlyRunDiscouraged(t *testing.T) {
	turns := []Turn{
		userTurn("me interesa el tratamiento facial"),
		botTurn("claro, te explico todo", ModalityVoice),
		botTurn("tenemos varias opciones para ti", ModalityVoice),
	}
	// 0.3 - 0.2 (voice-only replies) + 0.1 (awareness stage) = 0.2
	if got := ContextScore(turns); !almostEqual(got, 0.2) {
		t.Errorf("voice-only run: got %.2f, want 0.2", got)
	}
}

func TestContextScore_TextOnlyRunEncouragesVoice(t *testing.T) {
	turns := []Turn{
		userTurn("gracias por la informacion"),
		botTurn("con gusto, aqui estoy", ModalityText),
	}
	// 0.3 + 0.2 (text-only replies) + 0.1 (awareness stage) = 0.6
	if got := ContextScore(turns); !almostEqual(got, 0.6) {
		t.Errorf("text-only run: got %.2f, want 0.6", got)
	}
}

func TestContextScore_DecisionStageBoost(t *testing.T) {
	turns := []Turn{
		userTurn("quiero agendar mi cita"),
		botTurn("perfecto, dime tu horario", ModalityText),
		botTurn("te confirmo en un momento", ModalityVoice),
	}
	// 0.3 + 0 (mixed modalities) + 0.3 (decision stage) = 0.6
	if got := ContextScore(turns); !almostEqual(got, 0.6) {
		t.Errorf("decision stage: got %.2f, want 0.6", got)
	}
}

func TestContextScore_ConsiderationStagePenalty(t *testing.T) {
	turns := []Turn{
		userTurn("cual es el precio del paquete"),
		botTurn("te comparto la informacion", ModalityText),
	}
	// 0.3 + 0.2 (text-only replies) - 0.1 (consideration stage) = 0.4
	if got := ContextScore(turns); !almostEqual(got, 0.4) {
		t.Errorf("consideration stage: got %.2f, want 0.4", got)
	}
}

func TestContextScore_OnlyLastFiveTurnsExamined(t *testing.T) {
	turns := []Turn{
		botTurn("quiero agendar tu cita ya", ModalityVoice), // outside the window
	}
	for i := 0; i < 5; i++ {
		turns = append(turns, userTurn("gracias"))
	}
	// Window has no bot turns and no decision/consideration language:
	// 0.3 + 0 + 0.1 = 0.4
	if got := ContextScore(turns); !almostEqual(got, 0.4) {
		t.Errorf("window overflow: got %.2f, want 0.4", got)
	}
}

func TestDetectFunnelStage(t *testing.T) {
	cases := []struct {
		text string
		want FunnelStage
	}{
		{"quiero reservar para el viernes", StageDecision},
		{"cuanto cuesta versus el otro", StageConsideration},
		{"hola, me puedes contar mas", StageAwareness},
		{"el precio es alto pero quiero agendar", StageDecision}, // closing wins
	}
	for _, c := range cases {
		got := DetectFunnelStage([]Turn{userTurn(c.text)})
		if got != c.want {
			t.Errorf("%q: got %s, want %s", c.text, got, c.want)
		}
	}
}
