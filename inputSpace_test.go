package htm

import (
	"errors"
	"testing"

	"github.com/htm-community/htmseq/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSpaceInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewInputSpace(size)
		assert.True(t, errors.Is(err, ErrInvalidInputSize))
	}
}

func TestInputSpaceDoubleBuffer(t *testing.T) {
	in, err := NewInputSpace(4)
	require.NoError(t, err)

	require.NoError(t, in.SetCurrent(utils.Make1DBool([]int{1, 0, 1, 0})))
	in.Advance()
	require.NoError(t, in.SetCurrent(utils.Make1DBool([]int{0, 1, 1, 0})))

	assert.False(t, in.IsActive(0))
	assert.True(t, in.WasActive(0))
	assert.True(t, in.IsActive(1))
	assert.False(t, in.WasActive(1))

	bit := in.Bit(2)
	assert.Equal(t, 2, bit.Index())
	assert.True(t, bit.IsActive())
	assert.True(t, bit.WasActive())
}

func TestInputSpaceLengthMismatch(t *testing.T) {
	in, err := NewInputSpace(3)
	require.NoError(t, err)
	require.NoError(t, in.SetCurrent([]bool{true, false, true}))

	err = in.SetCurrent([]bool{false, false})
	assert.True(t, errors.Is(err, ErrInputLength))
	assert.Equal(t, []bool{true, false, true}, in.Current())
}
