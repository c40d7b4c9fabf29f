package perf

import "github.com/fmaa-dev/fmaa/internal/model"

// Threshold holds the warning/critical bounds for one metric type.
// LowerIsWorse inverts the comparison: throughput alerts when it drops.
type Threshold struct {
	Warning      float64
	Critical     float64
	LowerIsWorse bool
}

// DefaultThresholds is the fixed alerting table keyed by metric_type.
// Unknown metric types never alert.
var DefaultThresholds = map[string]Threshold{
	"response_time": {Warning: 1000, Critical: 3000},
	"cpu_usage":     {Warning: 70, Critical: 90},
	"memory_usage":  {Warning: 80, Critical: 95},
	"error_rate":    {Warning: 5, Critical: 10},
	"throughput":    {Warning: 10, Critical: 5, LowerIsWorse: true},
}

// EvaluateAlert checks value against the threshold table. The second return
// is false when no alert should fire.
func EvaluateAlert(metricType string, value float64) (model.LogLevel, bool) {
	return evaluate(DefaultThresholds, metricType, value)
}

func evaluate(table map[string]Threshold, metricType string, value float64) (model.LogLevel, bool) {
	t, ok := table[metricType]
	if !ok {
		return "", false
	}
	if t.LowerIsWorse {
		switch {
		case value <= t.Critical:
			return model.LogLevelCritical, true
		case value <= t.Warning:
			return model.LogLevelWarning, true
		}
		return "", false
	}
	switch {
	case value >= t.Critical:
		return model.LogLevelCritical, true
	case value >= t.Warning:
		return model.LogLevelWarning, true
	}
	return "", false
}
