package htm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//Tests getting/setting values
func TestDenseGetSet(t *testing.T) {
	sm := NewDenseBinaryMatrix(10, 10)
	sm.Set(2, 4, true)
	sm.Set(6, 5, true)
	sm.Set(7, 5, false)

	assert.True(t, sm.Get(2, 4))
	assert.True(t, sm.Get(6, 5))
	assert.False(t, sm.Get(7, 5))
	assert.Equal(t, 2, sm.TotalNonZeroCount())
	assert.Equal(t, []SparseEntry{{2, 4}, {6, 5}}, sm.Entries())
}

func TestDenseOutOfBoundsPanics(t *testing.T) {
	sm := NewDenseBinaryMatrix(3, 4)
	assert.Panics(t, func() { sm.Get(3, 0) })
	assert.Panics(t, func() { sm.Get(0, 4) })
	assert.Panics(t, func() { sm.Set(-1, 0, true) })
	assert.Panics(t, func() { sm.GetRowIndices(3) })
}

func TestDenseGetRowIndices(t *testing.T) {
	sm := NewDenseBinaryMatrix(10, 10)
	sm.Set(4, 9, true)
	sm.Set(4, 3, true)
	sm.Set(4, 6, true)

	assert.Equal(t, []int{3, 6, 9}, sm.GetRowIndices(4))
	assert.Equal(t, []int{}, sm.GetRowIndices(5))
}

func TestDenseRowCounts(t *testing.T) {
	sm := NewDenseBinaryMatrix(4, 3)
	for c := 0; c < 3; c++ {
		sm.Set(0, c, true)
	}
	sm.Set(2, 1, true)
	sm.Set(3, 0, true)
	sm.Set(3, 2, true)

	assert.Equal(t, []int{0, 2, 3}, sm.NonZeroRows())
	assert.Equal(t, 3, sm.TotalTrueRows())
	assert.Equal(t, 1, sm.TotalFullRows())
	assert.Equal(t, 6, sm.TotalNonZeroCount())
	assert.Equal(t, "111\n000\n010\n101\n", sm.ToString())
}

func TestDenseEquals(t *testing.T) {
	a := NewDenseBinaryMatrix(2, 2)
	b := NewDenseBinaryMatrix(2, 2)
	a.Set(0, 0, true)
	assert.False(t, a.Equals(b))

	b.Set(0, 0, true)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewDenseBinaryMatrix(2, 3)))
	assert.False(t, a.Equals(nil))

	var none *DenseBinaryMatrix
	assert.True(t, none.Equals(nil))
}
