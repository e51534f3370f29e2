package domain

import "path/filepath"

const (
	// CrossbowDirName is the name of the per-project metadata directory.
	CrossbowDirName = ".crossbow"

	// HistoryFileName is the name of the change-detection manifest.
	HistoryFileName = "history.json"

	// ConfigFileName is the primary project configuration file name.
	ConfigFileName = "crossbow.yaml"

	// AltConfigFileName is the alternative project configuration file name.
	AltConfigFileName = "crossbow.yml"

	// TasksDirName is the directory searched first for task files.
	TasksDirName = "tasks"

	// NodeBinDir is the directory holding locally installed node executables.
	NodeBinDir = "node_modules/.bin"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCrossbowPath returns the metadata directory relative to a project root.
func DefaultCrossbowPath() string {
	return CrossbowDirName
}

// DefaultHistoryPath returns the manifest path relative to a project root.
// It joins .crossbow and history.json.
func DefaultHistoryPath() string {
	return filepath.Join(CrossbowDirName, HistoryFileName)
}

// ConfigFileNames lists the configuration file names in lookup order.
func ConfigFileNames() []string {
	return []string{ConfigFileName, AltConfigFileName}
}
