package encoders

import (
	"testing"

	"github.com/htm-community/htmseq/utils"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	seq := NewSDR(5)

	assert.Equal(t, 5, seq.Len())
	assert.Equal(t, []bool{false, false, false, false, false}, seq.Slice())
}

func TestInitFromBools(t *testing.T) {
	seq := SDRFromBools(utils.Make1DBool([]int{0, 0, 1, 0, 0, 1, 0}))

	assert.Equal(t, 7, seq.Len())
	assert.Equal(t, []int{2, 5}, seq.OnIndices())
}

func TestInitFromStr(t *testing.T) {
	seq := SDRFromStr("0010010")

	assert.Equal(t, 7, seq.Len())
	assert.Equal(t, []bool{false, false, true, false, false, true, false}, seq.Slice())
	assert.Equal(t, "0010010", seq.String())
}

func TestOnBits(t *testing.T) {
	seq := SDRFromStr("0010010")

	assert.Equal(t, 2, seq.OnBits())

	seq = SDRFromStr("0010010000001001000000100100000010010000001001000000100100000010010000000000000")

	assert.Equal(t, 79, seq.Len())
	assert.Equal(t, 14, seq.OnBits())
}

func TestAt(t *testing.T) {
	seq := SDRFromIndices(70, []int{0, 4, 65, 99})

	assert.True(t, seq.At(0))
	assert.True(t, seq.At(4))
	assert.True(t, seq.At(65))
	assert.False(t, seq.At(1))
	assert.False(t, seq.At(99))
	assert.False(t, seq.At(-1))
	assert.Equal(t, 3, seq.OnBits())
}

func TestOverlapAndEquals(t *testing.T) {
	a := SDRFromStr("1100110000")
	b := SDRFromStr("0100100001")

	assert.Equal(t, 2, a.Overlap(b))
	assert.Equal(t, 2, b.Overlap(a))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(SDRFromStr("1100110000")))
	assert.False(t, a.Equals(SDRFromStr("11001100000")))
}

func TestSliceIsCopy(t *testing.T) {
	a := SDRFromStr("101")
	s := a.Slice()
	s[1] = true

	assert.Equal(t, "101", a.String())
}
