package generator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func dim(name string) *Dimension {
	return &Dimension{ID: uuid.New(), Name: name}
}

func TestJoinFragments(t *testing.T) {
	t.Run("joins non-empty fragments in order", func(t *testing.T) {
		name := JoinFragments("Acme", "Classic", "Tee")
		assert.Equal(t, "Acme Classic Tee", name)
	})

	t.Run("skips empty and whitespace fragments", func(t *testing.T) {
		name := JoinFragments("Acme", "", "  ", "Tee")
		assert.Equal(t, "Acme Tee", name)
	})

	t.Run("trims fragment whitespace", func(t *testing.T) {
		name := JoinFragments("  Acme  ", "Tee")
		assert.Equal(t, "Acme Tee", name)
	})

	t.Run("all empty yields empty string", func(t *testing.T) {
		assert.Equal(t, "", JoinFragments("", "  "))
	})
}

func TestExpand(t *testing.T) {
	t.Run("full cartesian product with colors outer", func(t *testing.T) {
		red, blue := dim("Red"), dim("Blue")
		s, m := dim("S"), dim("M")

		combos := Expand([]*Dimension{red, blue}, []*Dimension{s, m})

		assert.Len(t, combos, 4)
		assert.Equal(t, Combination{Color: red, Size: s}, combos[0])
		assert.Equal(t, Combination{Color: red, Size: m}, combos[1])
		assert.Equal(t, Combination{Color: blue, Size: s}, combos[2])
		assert.Equal(t, Combination{Color: blue, Size: m}, combos[3])
	})

	t.Run("empty sizes collapses to one per color", func(t *testing.T) {
		combos := Expand([]*Dimension{dim("Red"), dim("Blue")}, nil)

		assert.Len(t, combos, 2)
		for _, c := range combos {
			assert.NotNil(t, c.Color)
			assert.Nil(t, c.Size)
		}
	})

	t.Run("empty colors collapses to one per size", func(t *testing.T) {
		combos := Expand(nil, []*Dimension{dim("S")})

		assert.Len(t, combos, 1)
		assert.Nil(t, combos[0].Color)
		assert.NotNil(t, combos[0].Size)
	})

	t.Run("both axes empty yields a single bare combination", func(t *testing.T) {
		combos := Expand(nil, nil)

		assert.Len(t, combos, 1)
		assert.Nil(t, combos[0].Color)
		assert.Nil(t, combos[0].Size)
	})
}

func TestDecorateName(t *testing.T) {
	t.Run("appends color then size annotations", func(t *testing.T) {
		name := DecorateName("Acme Classic Tee", dim("Red"), dim("S"))
		assert.Equal(t, "Acme Classic Tee (Red) [S]", name)
	})

	t.Run("nil dimensions leave the base untouched", func(t *testing.T) {
		assert.Equal(t, "Acme Classic Tee", DecorateName("Acme Classic Tee", nil, nil))
	})

	t.Run("unnamed dimension contributes no annotation", func(t *testing.T) {
		unnamed := &Dimension{ID: uuid.New()}
		name := DecorateName("Acme Classic Tee", unnamed, dim("M"))
		assert.Equal(t, "Acme Classic Tee [M]", name)
	})

	t.Run("annotation already present is not repeated", func(t *testing.T) {
		name := DecorateName("Acme Classic Tee (Red) [S]", dim("Red"), dim("S"))
		assert.Equal(t, "Acme Classic Tee (Red) [S]", name)
	})
}

func TestExpandAndDecorate(t *testing.T) {
	base := JoinFragments("Acme", "Classic Tee")
	colors := []*Dimension{dim("Red"), dim("Blue")}
	sizes := []*Dimension{dim("S"), dim("M")}

	var names []string
	for _, combo := range Expand(colors, sizes) {
		names = append(names, DecorateName(base, combo.Color, combo.Size))
	}

	assert.Equal(t, []string{
		"Acme Classic Tee (Red) [S]",
		"Acme Classic Tee (Red) [M]",
		"Acme Classic Tee (Blue) [S]",
		"Acme Classic Tee (Blue) [M]",
	}, names)
}

func TestCodeSequence(t *testing.T) {
	t.Run("codes are unique and well formed", func(t *testing.T) {
		seq := NewCodeSequence()
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			code := seq.Next()
			assert.True(t, strings.HasPrefix(code, "SKU-"))
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
	})

	t.Run("counter is zero padded", func(t *testing.T) {
		seq := NewCodeSequence()
		assert.True(t, strings.HasSuffix(seq.Next(), "-0001"))
		assert.True(t, strings.HasSuffix(seq.Next(), "-0002"))
	})

	t.Run("independent sequences use distinct prefixes", func(t *testing.T) {
		a, b := NewCodeSequence(), NewCodeSequence()
		assert.NotEqual(t, a.Next(), b.Next())
	})
}
