package config

import "context"

// Loader is the interface for a format-specific declaration collector.
type Loader interface {
	// Load walks the modules root, decodes every declaration file and
	// returns them grouped by module.
	Load(ctx context.Context, root string) (*Collection, error)
}

// MergePoint is the extension point invoked after file collection. It may
// supply extra declarations which are merged as if they came from files.
type MergePoint interface {
	PostCollection(ctx context.Context, root string) ([]ScriptDeclaration, error)
}
