package decision

import (
	"testing"
	"time"
)

func atHour(hour int) time.Time {
	return time.Date(2025, time.March, 12, hour, 30, 0, 0, time.UTC)
}

func TestTimeScore_CustomWindowIsHardVeto(t *testing.T) {
	policy := ClientPolicy{BusinessHours: &HourWindow{Start: 10, End: 14}}

	cases := []struct {
		hour int
		want float64
	}{
		{9, 0},   // before custom window: hard veto
		{15, 0},  // after custom window: hard veto
		{10, 1.0},
		{13, 0.7},
		{14, 0.9},
	}
	for _, c := range cases {
		got := TimeScore(Request{Policy: policy, EvaluationTime: atHour(c.hour)})
		if got != c.want {
			t.Errorf("hour %d: got %.2f, want %.2f", c.hour, got, c.want)
		}
	}
}

func TestTimeScore_DefaultWindowIsAdvisory(t *testing.T) {
	policy := DefaultPolicy()

	if got := TimeScore(Request{Policy: policy, EvaluationTime: atHour(7)}); got != 0.2 {
		t.Errorf("outside default window should be 0.2, got %.2f", got)
	}
	if got := TimeScore(Request{Policy: policy, EvaluationTime: atHour(22)}); got != 0.2 {
		t.Errorf("late night should be 0.2, got %.2f", got)
	}
}

func TestTimeScore_InWindowTiers(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		hour int
		want float64
	}{
		{11, 1.0}, // active morning
		{15, 0.9}, // productive afternoon
		{9, 0.7},
		{13, 0.7},
		{18, 0.7},
	}
	for _, c := range cases {
		got := TimeScore(Request{Policy: policy, EvaluationTime: atHour(c.hour)})
		if got != c.want {
			t.Errorf("hour %d: got %.2f, want %.2f", c.hour, got, c.want)
		}
	}
}
