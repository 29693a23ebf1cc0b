// Package store provides the namespaced key-value persistence contract.
// It is the only package allowed to touch the underlying medium; every
// other component works against the Store interface so it can run on the
// in-memory implementation in tests.
package store

// Prefix namespaces every key so Clear never touches foreign data.
const Prefix = "pokemon_lockes_"

// Store is the persistence contract. Values round-trip through JSON.
type Store interface {
	// Get decodes the value stored under key into out. It returns false
	// when the key is absent or the stored payload cannot be decoded, in
	// which case out is left untouched so the caller keeps its default.
	Get(key string, out any) bool
	// Set encodes v as JSON and persists it. Returns false on
	// serialization or write failure.
	Set(key string, v any) bool
	Remove(key string)
	// Clear removes only the keys under this store's namespace.
	Clear()
	Exists(key string) bool
	// ListKeys returns all namespaced keys with the prefix stripped.
	ListKeys() []string
}
