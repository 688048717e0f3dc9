package decision

import (
	"strings"
	"testing"
)

func hasFactor(factors []string, name string) bool {
	for _, f := range factors {
		if f == name {
			return true
		}
	}
	return false
}

func TestAnalyzeContent_PriceHeavyReply(t *testing.T) {
	a := AnalyzeContent(
		"cuánto cuesta el servicio",
		"El servicio cuesta $500, tenemos 3 paquetes disponibles",
		DefaultConfig(),
	)

	for _, want := range []string{"contains_prices", "contains_lists", "contains_numbers"} {
		if !hasFactor(a.Factors, want) {
			t.Errorf("expected factor %q, got %v", want, a.Factors)
		}
	}
	if a.Score >= 0.5 {
		t.Errorf("price-heavy reply should score below neutral, got %.2f", a.Score)
	}
}

func TestAnalyzeContent_Greeting(t *testing.T) {
	a := AnalyzeContent("hola buenas tardes", "¡Hola! ¿En qué puedo ayudarte?", DefaultConfig())

	if !hasFactor(a.Factors, "greeting_detected") {
		t.Errorf("expected greeting_detected, got %v", a.Factors)
	}
	if a.Score <= 0.5 {
		t.Errorf("greeting should score above neutral, got %.2f", a.Score)
	}
}

func TestAnalyzeContent_ObjectionOnlyFromUser(t *testing.T) {
	// Objection language in the reply alone must not fire the category.
	fromReply := AnalyzeContent("quiero informacion", "no es caro para lo que incluye", DefaultConfig())
	if hasFactor(fromReply.Factors, "objection_handling") {
		t.Errorf("objection category should not match the reply, got %v", fromReply.Factors)
	}

	fromUser := AnalyzeContent("me parece muy caro, lo voy a pensarlo", "entiendo tu punto", DefaultConfig())
	if !hasFactor(fromUser.Factors, "objection_handling") {
		t.Errorf("expected objection_handling from user message, got %v", fromUser.Factors)
	}
}

func TestAnalyzeContent_LongReplyPenalty(t *testing.T) {
	long := strings.Repeat("palabra neutra ", 25) // > 300 chars, no category hits
	a := AnalyzeContent("ok", long, DefaultConfig())

	if !hasFactor(a.Factors, "response_too_long") {
		t.Errorf("expected response_too_long, got %v", a.Factors)
	}
	if a.ReplyLength != len(long) {
		t.Errorf("reply length = %d, want %d", a.ReplyLength, len(long))
	}
	if diff := a.Score - 0.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected 0.5 - 0.2 = 0.3, got %.2f", a.Score)
	}
}

func TestAnalyzeContent_EmptyInputsAreNeutral(t *testing.T) {
	a := AnalyzeContent("", "", DefaultConfig())
	if a.Score != 0.5 {
		t.Errorf("empty inputs should stay at neutral 0.5, got %.2f", a.Score)
	}
	if len(a.Factors) != 0 {
		t.Errorf("empty inputs should produce no factors, got %v", a.Factors)
	}
	if a.ReplyLength != 0 {
		t.Errorf("expected zero reply length, got %d", a.ReplyLength)
	}
}

func TestAnalyzeContent_ScoreAlwaysClamped(t *testing.T) {
	cases := []struct{ user, reply string }{
		{"hola, necesito ayuda urgente, es dificil", "hola, agendar tu cita cuando quieras"},
		{"", "precio $100 lista 1 servicio disponible $200 opcion 3"},
	}
	for _, c := range cases {
		a := AnalyzeContent(c.user, c.reply, DefaultConfig())
		if a.Score < 0 || a.Score > 1 {
			t.Errorf("score %.2f out of [0,1] for %q / %q", a.Score, c.user, c.reply)
		}
	}
}
