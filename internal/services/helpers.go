package services

import (
	"context"

	"github.com/rehber-app/anket-client/internal/store"
)

// runAndRead runs op and then reads the key back from the store. The read
// happens on failure too so callers can keep showing stale data.
func runAndRead[T any](ctx context.Context, st *store.Store, op store.Operation, read func(store.State) (T, bool)) (Loaded[T], error) {
	_, err := st.Run(ctx, op)
	value, ok := read(st.State())
	return Loaded[T]{Value: value, Present: ok}, err
}
