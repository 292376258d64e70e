package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// OrderingAssigner hands out the ordering for a new tour: the current maximum
// plus one, read fresh on every call. Two concurrent creations may receive
// the same value; ties are broken by id wherever tours are listed.
type OrderingAssigner struct {
	source ports.OrderingSource
}

// NewOrderingAssigner creates an assigner reading from source.
func NewOrderingAssigner(source ports.OrderingSource) *OrderingAssigner {
	return &OrderingAssigner{source: source}
}

// Next returns max(ordering)+1, or 1 for an empty collection.
func (a *OrderingAssigner) Next(ctx context.Context) (int, error) {
	highest, err := a.source.MaxOrdering(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading max ordering: %w", err)
	}
	return highest + 1, nil
}
