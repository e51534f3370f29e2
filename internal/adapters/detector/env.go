// Package detector inspects the process environment to pick output behavior.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how task output is presented.
type OutputMode int

const (
	// ModeAuto defers to detection.
	ModeAuto OutputMode = iota
	// ModeInteractive attaches tasks to a PTY and uses the terminal's color profile.
	ModeInteractive
	// ModeLinear writes plain, prefixed lines suitable for CI logs.
	ModeLinear
)

// OutputEnv names the variable that overrides the detected mode.
const OutputEnv = "CROSSBOW_OUTPUT"

// Mode returns the detected mode with the CROSSBOW_OUTPUT override applied.
func Mode() OutputMode {
	return ResolveMode(DetectEnvironment(), os.Getenv(OutputEnv))
}

// DetectEnvironment returns ModeLinear when stdout is not a terminal or a CI
// environment is detected, and ModeInteractive otherwise.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || IsCI(ci) {
		return ModeLinear
	}
	return ModeInteractive
}

// IsCI reports whether the value of the CI variable marks a CI environment.
func IsCI(value string) bool {
	return value == "true" || value == "1"
}

// ResolveMode applies a user override to the detected mode.
// Accepted values are "auto", "interactive", "linear" and "ci"; anything else keeps the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "interactive":
		return ModeInteractive
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
