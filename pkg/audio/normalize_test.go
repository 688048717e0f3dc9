package audio

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPrepareText_StripsAndCollapses(t *testing.T) {
	got, err := PrepareText("  ¡Hola!   ¿Cómo   estás? <b>bien</b> 😀 ")
	if err != nil {
		t.Fatal(err)
	}
	want := "¡Hola! ¿Cómo estás? bbienb"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrepareText_TruncatesAtSentenceBoundary(t *testing.T) {
	// A period lands at position 450, inside the last fifth of the budget.
	text := strings.Repeat("a", 449) + "." + strings.Repeat("b", 150)
	got, err := PrepareText(text)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected truncation at the sentence boundary, got suffix %q", got[len(got)-5:])
	}
	if utf8.RuneCountInString(got) != 450 {
		t.Errorf("got %d runes, want 450", utf8.RuneCountInString(got))
	}
}

func TestPrepareText_HardTruncateWithoutBoundary(t *testing.T) {
	got, err := PrepareText(strings.Repeat("x", 700))
	if err != nil {
		t.Fatal(err)
	}
	if utf8.RuneCountInString(got) != maxTextLength {
		t.Errorf("got %d runes, want %d", utf8.RuneCountInString(got), maxTextLength)
	}
}

func TestPrepareText_MultibyteEarlyPeriodIgnored(t *testing.T) {
	// Accented runes are multi-byte: the period at rune 360 sits past the
	// 80% mark in bytes but not in runes, so the hard cut must win.
	text := strings.Repeat("á", 360) + "." + strings.Repeat("x", 240)
	got, err := PrepareText(text)
	if err != nil {
		t.Fatal(err)
	}
	if utf8.RuneCountInString(got) != maxTextLength {
		t.Errorf("got %d runes, want %d", utf8.RuneCountInString(got), maxTextLength)
	}
}

func TestPrepareText_MultibyteSentenceBoundary(t *testing.T) {
	// Period at rune 420, inside the last fifth of the budget.
	text := strings.Repeat("á", 420) + "." + strings.Repeat("x", 200)
	got, err := PrepareText(text)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected truncation at the sentence boundary, got suffix %q", got[len(got)-5:])
	}
	if utf8.RuneCountInString(got) != 421 {
		t.Errorf("got %d runes, want 421", utf8.RuneCountInString(got))
	}
}

func TestPrepareText_EarlyPeriodIgnored(t *testing.T) {
	// Boundary at position 100 is before the 80% mark, so the hard cut wins.
	text := strings.Repeat("a", 99) + "." + strings.Repeat("b", 600)
	got, err := PrepareText(text)
	if err != nil {
		t.Fatal(err)
	}
	if utf8.RuneCountInString(got) != maxTextLength {
		t.Errorf("got %d runes, want %d", utf8.RuneCountInString(got), maxTextLength)
	}
}

func TestPrepareText_Rejections(t *testing.T) {
	if _, err := PrepareText("   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("blank input: got %v, want ErrEmptyText", err)
	}
	if _, err := PrepareText("😀😀😀"); !errors.Is(err, ErrEmptyText) {
		t.Errorf("symbols only: got %v, want ErrEmptyText", err)
	}
	if _, err := PrepareText("ok"); !errors.Is(err, ErrTextTooShort) {
		t.Errorf("short input: got %v, want ErrTextTooShort", err)
	}
}
