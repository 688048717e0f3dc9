package audio

import "testing"

func TestSelectVoice(t *testing.T) {
	cases := []struct {
		preferred   string
		messageType MessageType
		want        string
	}{
		{"calm", MessageGreeting, voiceCatalog["calm"]}, // explicit preference wins
		{"", MessageGreeting, voiceCatalog["friendly"]},
		{"", MessageClosing, voiceCatalog["friendly"]},
		{"", MessageUrgency, voiceCatalog["energetic"]},
		{"", MessageObjection, voiceCatalog["calm"]},
		{"unknown-style", MessageGeneral, voiceCatalog["professional"]},
	}
	for _, c := range cases {
		if got := SelectVoice(c.preferred, c.messageType); got != c.want {
			t.Errorf("SelectVoice(%q, %s) = %s, want %s", c.preferred, c.messageType, got, c.want)
		}
	}
}

func TestOptimizeSettings(t *testing.T) {
	if s := OptimizeSettings(MessageGreeting); s.Style != 0.7 {
		t.Errorf("greeting style = %.1f, want 0.7", s.Style)
	}
	if s := OptimizeSettings(MessageClosing); s.Style != 0.7 || s.Stability != 0.5 {
		t.Errorf("closing settings = %+v, want expressive style on base stability", s)
	}
	if s := OptimizeSettings(MessageObjection); s.Stability != 0.8 || s.Style != 0.3 {
		t.Errorf("objection settings = %+v", s)
	}
	if s := OptimizeSettings(MessageUrgency); s.Stability != 0.3 || s.Style != 0.8 {
		t.Errorf("urgency settings = %+v", s)
	}
	if s := OptimizeSettings(MessageTechnical); s.Stability != 0.9 || s.Style != 0.2 {
		t.Errorf("technical settings = %+v", s)
	}
	if s := OptimizeSettings(MessageGeneral); s != DefaultVoiceSettings() {
		t.Errorf("general settings should stay at defaults, got %+v", s)
	}
}

func TestMessageTypeFromFactors(t *testing.T) {
	cases := []struct {
		factors []string
		want    MessageType
	}{
		{[]string{"greeting_detected"}, MessageGreeting},
		{[]string{"objection_handling", "contains_prices"}, MessageObjection},
		{[]string{"closing_opportunity"}, MessageClosing},
		{[]string{"emotional_content"}, MessageUrgency},
		{[]string{"contains_numbers"}, MessageTechnical},
		{nil, MessageGeneral},
	}
	for _, c := range cases {
		if got := MessageTypeFromFactors(c.factors); got != c.want {
			t.Errorf("factors %v: got %s, want %s", c.factors, got, c.want)
		}
	}
}
