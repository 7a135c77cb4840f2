// File: api/schemas/interfaces.go
package schemas

import "context"

// -- Persistence Boundary --

// DocumentStore defines the persistence boundary for serialized diagram
// documents. This abstraction keeps the engine independent of the
// specific backend (PostgreSQL, file system, in-memory).
type DocumentStore interface {
	// LoadDocument retrieves a serialized document by key. A nil payload
	// with a nil error means the key is unknown.
	LoadDocument(ctx context.Context, key string) ([]byte, error)
	// SaveDocument persists a serialized document under the given key,
	// overwriting any previous payload.
	SaveDocument(ctx context.Context, key string, payload []byte) error
}

// -- Host Collaborators --

// Notifier accepts user-facing summaries. The engine never formats
// user-visible text beyond an error's own message field; surfacing is
// owned by the host.
type Notifier interface {
	Notify(message string, severity Severity)
}

// HostAdapter resolves a block's external CAD link to native component
// properties. The engine only produces sync actions that reference
// links; it never resolves them itself.
type HostAdapter interface {
	ResolveLink(ctx context.Context, kind LinkKind, target string) (map[string]interface{}, error)
}
