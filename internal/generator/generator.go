// Package generator holds the pure naming and combination logic behind SKU
// materialization. No I/O lives here; resolution of IDs to display names and
// persistence belong to the callers.
package generator

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Dimension is one resolved variant axis value (a color or a size).
type Dimension struct {
	ID   uuid.UUID
	Name string
}

// Combination is a single (color, size) cell of the variant product. Either
// side may be nil when that axis was not selected.
type Combination struct {
	Color *Dimension
	Size  *Dimension
}

// JoinFragments space-joins the non-empty fragments in the order given.
// Callers pass fragments in the fixed order: brand/line, model, style,
// pattern, material, fit, apparel.
func JoinFragments(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// Expand returns the Cartesian product colors × sizes, outer loop colors,
// inner loop sizes. An empty axis is treated as the singleton {nil}, so at
// least one combination is always produced:
// len == max(1,|colors|) × max(1,|sizes|).
func Expand(colors, sizes []*Dimension) []Combination {
	if len(colors) == 0 {
		colors = []*Dimension{nil}
	}
	if len(sizes) == 0 {
		sizes = []*Dimension{nil}
	}
	combos := make([]Combination, 0, len(colors)*len(sizes))
	for _, c := range colors {
		for _, s := range sizes {
			combos = append(combos, Combination{Color: c, Size: s})
		}
	}
	return combos
}

// DecorateName appends the " (Color)" and " [Size]" annotations to a base
// name. An annotation already literally present in the base is not appended
// again, so re-running the pipeline on an existing SKU name is safe.
func DecorateName(base string, color, size *Dimension) string {
	name := base
	if color != nil && color.Name != "" {
		annotation := "(" + color.Name + ")"
		if !strings.Contains(name, annotation) {
			name += " " + annotation
		}
	}
	if size != nil && size.Name != "" {
		annotation := "[" + size.Name + "]"
		if !strings.Contains(name, annotation) {
			name += " " + annotation
		}
	}
	return name
}

// CodeSequence hands out unique SKU codes. Uniqueness comes from a random
// per-sequence prefix plus a monotonic counter, so concurrent batches cannot
// collide the way wall-clock-derived codes can.
type CodeSequence struct {
	prefix  string
	counter atomic.Int64
}

// NewCodeSequence creates a sequence with a fresh random prefix.
func NewCodeSequence() *CodeSequence {
	return &CodeSequence{
		prefix: strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
	}
}

// Next returns the next code in the sequence.
func (s *CodeSequence) Next() string {
	return fmt.Sprintf("SKU-%s-%04d", s.prefix, s.counter.Add(1))
}
