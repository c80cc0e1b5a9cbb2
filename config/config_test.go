package config

import "testing"

func TestEffectiveThresholdDefaultsWhenZero(t *testing.T) {
	var c Config
	if got := c.EffectiveThreshold(); got != DefaultThreshold {
		t.Errorf("EffectiveThreshold() = %d, want %d", got, DefaultThreshold)
	}
}

func TestEffectiveThresholdHonorsExplicitValue(t *testing.T) {
	c := Config{Threshold: 1}
	if got := c.EffectiveThreshold(); got != 1 {
		t.Errorf("EffectiveThreshold() = %d, want 1", got)
	}
}

func TestEffectiveThresholdHonorsNever(t *testing.T) {
	c := Config{Threshold: NeverReconstruct}
	if got := c.EffectiveThreshold(); got != NeverReconstruct {
		t.Errorf("EffectiveThreshold() = %d, want NeverReconstruct", got)
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" {
		t.Errorf("Forward.String() = %q, want %q", Forward.String(), "forward")
	}
	if Backward.String() != "backward" {
		t.Errorf("Backward.String() = %q, want %q", Backward.String(), "backward")
	}
}

func TestDefaultConfig(t *testing.T) {
	d := Default()
	if d.Direction != Forward {
		t.Errorf("Default().Direction = %v, want Forward", d.Direction)
	}
	if d.Threshold != DefaultThreshold {
		t.Errorf("Default().Threshold = %d, want %d", d.Threshold, DefaultThreshold)
	}
}
