// Package constraint defines the declarative sameby/diffby specification
// consumed by the matching engine.
//
// A Clause names the columns a pair must agree on (sameby) or differ on
// (diffby). Within one clause, All columns must each satisfy the condition
// and Any columns must satisfy it at least once. The convenience
// constructors cover the common shapes: a single column, a plain list
// (treated as All), or an explicit All/Any grouping.
package constraint

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNoConstraints is returned when neither sameby nor diffby names any
	// column.
	ErrNoConstraints = errors.New("sameby, diffby: at least one column should be provided")
)

// ErrAnyOfOne indicates an Any group with exactly one column. Any-of-one is
// equivalent to All and almost always signals a caller mistake, so it is
// rejected.
type ErrAnyOfOne struct {
	Family string // "sameby" or "diffby"
}

func (e *ErrAnyOfOne) Error() string {
	return fmt.Sprintf("%s: any should have more than one column", e.Family)
}

// ErrOverlap indicates columns appearing in more than one of the four
// constraint sets (sameby all/any, diffby all/any).
type ErrOverlap struct {
	Columns []string
}

func (e *ErrOverlap) Error() string {
	return fmt.Sprintf("sameby and diffby must be disjoint, overlapping columns: %v", e.Columns)
}

// ErrUnknownColumns indicates constraint columns absent from the dataset's
// selected columns.
type ErrUnknownColumns struct {
	Columns []string
}

func (e *ErrUnknownColumns) Error() string {
	return fmt.Sprintf("sameby, diffby: %v columns not in dataset", e.Columns)
}

// Clause is the canonical form of one constraint family.
//
// The zero Clause is valid and means "unconstrained".
type Clause struct {
	All []string
	Any []string
}

// None returns the empty clause.
func None() Clause { return Clause{} }

// Col constrains a single column.
func Col(name string) Clause { return Clause{All: []string{name}} }

// Cols constrains a list of columns, all of which must satisfy the
// condition.
func Cols(names ...string) Clause { return Clause{All: names} }

// AnyOf constrains a list of columns of which at least one must satisfy the
// condition.
func AnyOf(names ...string) Clause { return Clause{Any: names} }

// IsEmpty reports whether the clause constrains nothing.
func (c Clause) IsEmpty() bool { return len(c.All) == 0 && len(c.Any) == 0 }

// Columns returns all columns referenced by the clause.
func (c Clause) Columns() []string {
	out := make([]string, 0, len(c.All)+len(c.Any))
	out = append(out, c.All...)
	out = append(out, c.Any...)
	return out
}

func (c Clause) validate(family string) error {
	if len(c.Any) == 1 {
		return &ErrAnyOfOne{Family: family}
	}
	return nil
}

// ValidateClause checks one clause in isolation: no Any group of exactly
// one column, and every referenced column present in the dataset. An empty
// clause is valid. Used by null-pair sampling, where only diffby applies
// and an unconstrained draw is legitimate.
func ValidateClause(c Clause, family string, columns []string) error {
	if err := c.validate(family); err != nil {
		return err
	}
	avail := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		avail[col] = struct{}{}
	}
	var missing []string
	for _, col := range c.Columns() {
		if _, ok := avail[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ErrUnknownColumns{Columns: missing}
	}
	return nil
}

// Validate checks a full sameby/diffby specification against the dataset's
// selected columns. It enforces, in order:
//
//   - no Any group of exactly one column;
//   - at least one constrained column overall;
//   - pairwise disjointness of the four column sets;
//   - every referenced column present in the dataset.
//
// Validation happens before any enumeration; a specification error is never
// retried.
func Validate(sameby, diffby Clause, columns []string) error {
	if err := sameby.validate("sameby"); err != nil {
		return err
	}
	if err := diffby.validate("diffby"); err != nil {
		return err
	}
	if sameby.IsEmpty() && diffby.IsEmpty() {
		return ErrNoConstraints
	}

	seen := make(map[string]struct{})
	var overlap []string
	for _, set := range [][]string{sameby.All, sameby.Any, diffby.All, diffby.Any} {
		for _, col := range set {
			if _, dup := seen[col]; dup {
				overlap = append(overlap, col)
				continue
			}
			seen[col] = struct{}{}
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		return &ErrOverlap{Columns: overlap}
	}

	avail := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		avail[col] = struct{}{}
	}
	var missing []string
	for col := range seen {
		if _, ok := avail[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ErrUnknownColumns{Columns: missing}
	}
	return nil
}
