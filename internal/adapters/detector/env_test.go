package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crossbow/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		isTTY bool
		ci    string
		want  detector.OutputMode
	}{
		{name: "terminal without CI", isTTY: true, ci: "", want: detector.ModeInteractive},
		{name: "terminal with CI=true", isTTY: true, ci: "true", want: detector.ModeLinear},
		{name: "terminal with CI=1", isTTY: true, ci: "1", want: detector.ModeLinear},
		{name: "terminal with CI=false", isTTY: true, ci: "false", want: detector.ModeInteractive},
		{name: "pipe", isTTY: false, ci: "", want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.isTTY, tt.ci))
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		flag     string
		detected detector.OutputMode
		want     detector.OutputMode
	}{
		{flag: "", detected: detector.ModeInteractive, want: detector.ModeInteractive},
		{flag: "auto", detected: detector.ModeLinear, want: detector.ModeLinear},
		{flag: "linear", detected: detector.ModeInteractive, want: detector.ModeLinear},
		{flag: "ci", detected: detector.ModeInteractive, want: detector.ModeLinear},
		{flag: "interactive", detected: detector.ModeLinear, want: detector.ModeInteractive},
		{flag: "bogus", detected: detector.ModeLinear, want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.detected, tt.flag))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")

	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
}

func TestMode_Override(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv(detector.OutputEnv, "interactive")

	assert.Equal(t, detector.ModeInteractive, detector.Mode())
}
