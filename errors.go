package harmonium

import "fmt"

// InvalidTuningSpecError reports a TuningSpec or key range that violates the
// tuning invariants. Field and Value identify the offending parameter so the
// caller can show an actionable message.
type InvalidTuningSpecError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidTuningSpecError) Error() string {
	return fmt.Sprintf("invalid tuning spec: %s = %v: %s", e.Field, e.Value, e.Reason)
}

// InvalidRenderParamsError reports render parameters the synthesizer cannot
// honor: non-positive duration, a frequency outside (0, Nyquist), or a fixed
// timbre/format configuration that fails validation.
type InvalidRenderParamsError struct {
	Frequency float64
	Duration  float64
	Reason    string
}

func (e *InvalidRenderParamsError) Error() string {
	return fmt.Sprintf("invalid render params (frequency %g Hz, duration %g s): %s", e.Frequency, e.Duration, e.Reason)
}
