package domain

// ConfigFileName is the workspace marker and configuration file.
const ConfigFileName = "s2composite.yaml"

// StateDirName holds logs and other files that should not be committed.
const StateDirName = ".s2composite"

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}
