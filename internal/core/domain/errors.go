package domain

import "go.trai.ch/zerr"

// Resolution errors. They are attached to tasks as TaskError values and never
// returned from the resolver.
var (
	// ErrTaskNotFound is attached when a name matches neither the configuration nor a task file.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrSubtasksNotInConfig is attached when sub-tasks are requested for a task that has no options block.
	ErrSubtasksNotInConfig = zerr.New("sub-tasks given but the task has no options or named variants")

	// ErrSubtaskNotProvided is attached when a sub-task segment is empty, e.g. "sass:".
	ErrSubtaskNotProvided = zerr.New("sub-task name not provided")

	// ErrSubtaskNotFound is attached when a sub-task matches no option key or named child.
	ErrSubtaskNotFound = zerr.New("sub-task not found")

	// ErrSubtaskWildcardNotAvailable is attached when "*" is used on a task without option keys.
	ErrSubtaskWildcardNotAvailable = zerr.New("wildcard sub-task is not available")

	// ErrAdaptorNotFound is attached when an "@name" prefix names no registered adaptor.
	ErrAdaptorNotFound = zerr.New("adaptor not found")

	// ErrAdaptorValidationFailed is attached when a registered adaptor rejects the task.
	ErrAdaptorValidationFailed = zerr.New("adaptor rejected task")

	// ErrFlagNotProvided is attached when the "@" flag marker is followed by nothing.
	ErrFlagNotProvided = zerr.New("flag marker given without flags")

	// ErrInvalidFlags is attached when the flags after "@" contain anything but letters.
	ErrInvalidFlags = zerr.New("invalid task flags")

	// ErrCircularReference is attached when a task name appears among its own ancestors.
	ErrCircularReference = zerr.New("circular reference")

	// ErrFileTypeNotSupported is attached when a task file has no known interpreter.
	ErrFileTypeNotSupported = zerr.New("file type not supported")
)

// Engine and application errors.
var (
	// ErrMalformedPlan is returned by the runner when the sequence violates its structural contract.
	ErrMalformedPlan = zerr.New("malformed sequence plan")

	// ErrInvalidTask is returned by the sequence builder when asked to flatten an invalid task.
	ErrInvalidTask = zerr.New("cannot build sequence from invalid task")

	// ErrRunnableContract is reported when a runnable does not implement its declared convention.
	ErrRunnableContract = zerr.New("runnable does not implement its declared convention")

	// ErrTaskPanicked is reported when a runnable panics during invocation.
	ErrTaskPanicked = zerr.New("task panicked")

	// ErrTaskFailed is reported when a runnable signals failure without an error value.
	ErrTaskFailed = zerr.New("task failed")

	// ErrNoTargetsSpecified is returned when the run command receives no task names.
	ErrNoTargetsSpecified = zerr.New("no tasks specified")

	// ErrResolutionFailed is returned when at least one requested task is invalid.
	ErrResolutionFailed = zerr.New("task resolution failed")

	// ErrBuildExecutionFailed is returned when at least one task failed and fail-on-error is set.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrCommandFailed is returned by the shell executor when a process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")
)

// Storage and configuration errors.
var (
	// ErrHistoryCreateFailed is returned when the history directory cannot be created.
	ErrHistoryCreateFailed = zerr.New("failed to create history directory")

	// ErrHistoryReadFailed is returned when the history manifest cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read history manifest")

	// ErrHistoryUnmarshalFailed is returned when the history manifest cannot be decoded.
	ErrHistoryUnmarshalFailed = zerr.New("failed to unmarshal history manifest")

	// ErrHistoryMarshalFailed is returned when the history manifest cannot be encoded.
	ErrHistoryMarshalFailed = zerr.New("failed to marshal history manifest")

	// ErrHistoryWriteFailed is returned when the history manifest cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write history manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when an explicitly given config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrInvalidTaskValue is returned when a task value has an unsupported YAML shape.
	ErrInvalidTaskValue = zerr.New("invalid task value")

	// ErrInvalidRunMode is returned when a run mode is neither "series" nor "parallel".
	ErrInvalidRunMode = zerr.New("invalid run mode, expected 'series' or 'parallel'")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWriteHashFailed is returned when writing a hash to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")
)
