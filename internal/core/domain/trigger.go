package domain

// Input is the parsed command-line request.
type Input struct {
	Names       []string
	Parallel    bool
	Force       bool
	FailOnError bool
}

// Trigger is the run context handed to the resolver, the builder and adaptors.
type Trigger struct {
	Input  Input
	Config *Config
	Cwd    string
}

// Mode returns the top-level run mode of the request.
func (t *Trigger) Mode() RunMode {
	if t.Input.Parallel {
		return RunParallel
	}
	return RunSeries
}
