package config

import "gopkg.in/yaml.v3"

// Crossbowfile represents the structure of the crossbow.yaml configuration file.
// Tasks and options are kept as nodes so key order survives decoding.
type Crossbowfile struct {
	Version string       `yaml:"version"`
	Config  *SettingsDTO `yaml:"config"`
	Tasks   yaml.Node    `yaml:"tasks"`
	Options yaml.Node    `yaml:"options"`
}

// SettingsDTO represents the run settings block.
type SettingsDTO struct {
	Fail     *bool `yaml:"fail"`
	Parallel *bool `yaml:"parallel"`
}

// Reserved keys of a task definition object. Any other key names a variant.
const (
	keyDescription = "description"
	keyTasks       = "tasks"
	keyRunMode     = "runMode"
	keyIfChanged   = "ifChanged"
)
