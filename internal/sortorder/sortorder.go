// Package sortorder keeps user-controlled list positions dense and unique.
//
// Positions are zero-based. A collection at rest holds each position in
// 0..N-1 exactly once; callers own persistence and call these functions to
// learn which siblings must change.
package sortorder

import (
	"sort"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// Shift is a new position for one item
type Shift[T any] struct {
	Item     T
	Position int
}

// ShiftedPositions returns the siblings that must move when the item at
// previous is dragged to next. The moved item itself is never included; the
// caller sets it to next.
//
// Moving earlier pushes [next, previous) one slot later. Moving later pulls
// (previous, next] one slot earlier. Duplicate positions are not repaired,
// only items whose position falls in the affected range are shifted.
//
// A position outside [0, len(items)-1] is a contract violation and returns
// an error without any shifts.
func ShiftedPositions[T any](previous, next int, items []T, positionOf func(T) int) ([]Shift[T], error) {
	n := len(items)
	if previous < 0 || previous >= n {
		return nil, apperr.ContractViolationf("previous position %d outside [0, %d)", previous, n).
			WithMeta("previous", previous).
			WithMeta("size", n)
	}
	if next < 0 || next >= n {
		return nil, apperr.ContractViolationf("new position %d outside [0, %d)", next, n).
			WithMeta("next", next).
			WithMeta("size", n)
	}
	if previous == next {
		return nil, nil
	}

	lo, hi, delta := next, previous-1, 1
	if next > previous {
		lo, hi, delta = previous+1, next, -1
	}

	var shifts []Shift[T]
	for _, item := range items {
		pos := positionOf(item)
		if pos < lo || pos > hi {
			continue
		}
		shifts = append(shifts, Shift[T]{Item: item, Position: pos + delta})
	}
	return shifts, nil
}

// Compact returns the shifts that bring items back to a dense 0..N-1
// sequence, typically after one of them was removed. Relative order is kept;
// items sharing a position keep their input order. Items already in place are
// omitted.
func Compact[T any](items []T, positionOf func(T) int) []Shift[T] {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return positionOf(items[order[a]]) < positionOf(items[order[b]])
	})

	var shifts []Shift[T]
	for want, idx := range order {
		if positionOf(items[idx]) != want {
			shifts = append(shifts, Shift[T]{Item: items[idx], Position: want})
		}
	}
	return shifts
}
