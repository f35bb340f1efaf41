package ports

// WorkspaceLocator finds an s2composite workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
