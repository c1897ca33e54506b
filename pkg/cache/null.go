package cache

import "context"

// NullStore is a no-op store that never keeps anything.
// Useful for testing or when caching should be disabled.
type NullStore struct{}

// Read always returns an empty record.
func (NullStore) Read(context.Context) ([]byte, error) { return nil, nil }

// Write discards the record.
func (NullStore) Write(context.Context, []byte) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ Store = NullStore{}
