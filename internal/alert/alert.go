// Package alert classifies water-level readings against per-station flood
// alert thresholds.
package alert

// Level is a flood alert level in ascending order of severity.
type Level string

const (
	Normal    Level = "normal"
	Attention Level = "attention"
	Warning   Level = "warning"
	Alarm     Level = "alarm"
	Serious   Level = "serious"
)

// Levels lists the classifiable levels from least to most severe.
var Levels = []Level{Attention, Warning, Alarm, Serious}

// Thresholds is a station's alert threshold set. Absent fields mean the
// station is not monitored at that level. PlanFlood is informational only
// and never produces an alert level.
type Thresholds struct {
	Attention *float64 `json:"attention,omitempty"`
	Warning   *float64 `json:"warning,omitempty"`
	Alarm     *float64 `json:"alarm,omitempty"`
	Serious   *float64 `json:"serious,omitempty"`
	PlanFlood *float64 `json:"plan_flood,omitempty"`
}

// Bound returns the threshold for a level, or nil when not monitored.
func (t *Thresholds) Bound(level Level) *float64 {
	if t == nil {
		return nil
	}
	switch level {
	case Attention:
		return t.Attention
	case Warning:
		return t.Warning
	case Alarm:
		return t.Alarm
	case Serious:
		return t.Serious
	default:
		return nil
	}
}

// Empty reports whether no classifiable threshold is defined.
func (t *Thresholds) Empty() bool {
	if t == nil {
		return true
	}
	return t.Attention == nil && t.Warning == nil && t.Alarm == nil && t.Serious == nil
}

// Ordered reports whether all defined thresholds respect
// attention ≤ warning ≤ alarm ≤ serious. Violations are tolerated by the
// classifier but callers should log them.
func (t *Thresholds) Ordered() bool {
	if t == nil {
		return true
	}
	prev := -1.0
	havePrev := false
	for _, level := range Levels {
		b := t.Bound(level)
		if b == nil {
			continue
		}
		if havePrev && *b < prev {
			return false
		}
		prev, havePrev = *b, true
	}
	return true
}

// Classify returns the highest level whose bound is less than or equal to
// the value, Normal when no bound is reached, and ok=false when the value
// is absent or no thresholds are defined.
func Classify(value *float64, t *Thresholds) (Level, bool) {
	if value == nil || t.Empty() {
		return "", false
	}
	result := Normal
	for _, level := range Levels {
		if b := t.Bound(level); b != nil && *value >= *b {
			result = level
		}
	}
	return result, true
}

// LevelStatus describes a value's relation to one threshold level.
type LevelStatus struct {
	Threshold float64 `json:"threshold"`
	Status    string  `json:"status"` // "exceeded" | "safe"
	Margin    float64 `json:"margin"` // distance to the threshold, always ≥ 0
}

// Analyze reports, for each defined level, whether the value exceeds the
// bound and by how much.
func Analyze(value float64, t *Thresholds) map[Level]LevelStatus {
	if t.Empty() {
		return nil
	}
	out := make(map[Level]LevelStatus)
	for _, level := range Levels {
		b := t.Bound(level)
		if b == nil {
			continue
		}
		s := LevelStatus{Threshold: *b}
		if value >= *b {
			s.Status = "exceeded"
			s.Margin = value - *b
		} else {
			s.Status = "safe"
			s.Margin = *b - value
		}
		out[level] = s
	}
	return out
}
