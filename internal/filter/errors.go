package filter

import "errors"

var (
	// ErrUnknownCategory is returned when a clause names a category outside
	// the closed content.Category set.
	ErrUnknownCategory = errors.New("filter: unknown category")

	// ErrInvalidClause is returned for a clause that can never be satisfied
	// or that constrains an attribute its category does not have.
	ErrInvalidClause = errors.New("filter: invalid clause")

	// ErrSlotOutOfRange is returned when a clause's slot mask addresses a
	// position beyond the configured shop or pack size.
	ErrSlotOutOfRange = errors.New("filter: slot out of range")

	// ErrAnteOutOfRange is returned when a clause's ante mask addresses an
	// ante beyond the configured search range.
	ErrAnteOutOfRange = errors.New("filter: ante out of range")

	// ErrMixedInvertGroup is returned when some but not all clauses of one
	// category group are inverted. Whether invert applies per clause or per
	// group is ambiguous in the source behavior, so mixed groups are
	// rejected rather than silently picking a meaning.
	ErrMixedInvertGroup = errors.New("filter: mixed invert flags within clause group")
)
