package classifier

// Thresholds are the percentage moves that drive the swing rules.
// SwingUp/SwingDown decide when a run has reversed; ResumeUp/ResumeDown decide
// when a price has cleared a red or black line far enough to resume a trend.
type Thresholds struct {
	SwingUp    float64 `yaml:"swing_up" default:"6" validate:"gt=0"`
	SwingDown  float64 `yaml:"swing_down" default:"-6" validate:"lt=0"`
	ResumeUp   float64 `yaml:"resume_up" default:"3" validate:"gt=0"`
	ResumeDown float64 `yaml:"resume_down" default:"-3" validate:"lt=0"`
}

// DefaultThresholds returns the classic 6 and 3 point thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SwingUp:    6,
		SwingDown:  -6,
		ResumeUp:   3,
		ResumeDown: -3,
	}
}
