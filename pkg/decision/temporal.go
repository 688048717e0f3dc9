package decision

// Default business window, inclusive hours.
const (
	defaultBusinessStart = 9
	defaultBusinessEnd   = 18
)

// TimeScore rates the evaluation hour for voice delivery. A return of
// exactly 0 is a hard veto: outside an explicitly configured client window
// voice is never acceptable. Outside the default window (no client override)
// the score is a low but nonzero 0.2, since the default is advisory only.
// In-window hours are tiered: late morning and mid-afternoon score highest.
func TimeScore(req Request) float64 {
	hour := req.EvaluationTime.Hour()

	if w := req.Policy.BusinessHours; w != nil {
		if hour < w.Start || hour > w.End {
			return 0
		}
	} else if hour < defaultBusinessStart || hour > defaultBusinessEnd {
		return 0.2
	}

	switch {
	case hour >= 10 && hour <= 12:
		return 1.0
	case hour >= 14 && hour <= 16:
		return 0.9
	case hour >= defaultBusinessStart && hour <= defaultBusinessEnd:
		return 0.7
	default:
		return 0.3
	}
}
