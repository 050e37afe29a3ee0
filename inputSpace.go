package htm

import (
	"fmt"

	"github.com/htm-community/htmseq/utils"
)

/*
 InputSpace is the region's feed-forward input: a fixed number of bits,
double buffered so proximal synapses can see both this tick's and last
tick's value.
*/
type InputSpace struct {
	current  []bool
	previous []bool
}

func NewInputSpace(size int) (*InputSpace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInputSize, size)
	}
	in := new(InputSpace)
	in.current = make([]bool, size)
	in.previous = make([]bool, size)
	return in, nil
}

func (in *InputSpace) Size() int {
	return len(in.current)
}

//Overwrites the current buffer positionally
func (in *InputSpace) SetCurrent(bits []bool) error {
	if len(bits) != len(in.current) {
		return fmt.Errorf("%w: got %v bits, want %v", ErrInputLength, len(bits), len(in.current))
	}
	copy(in.current, bits)
	return nil
}

//Copies current into previous. Called once per tick before SetCurrent.
func (in *InputSpace) Advance() {
	copy(in.previous, in.current)
}

func (in *InputSpace) IsActive(i int) bool {
	return in.current[i]
}

func (in *InputSpace) WasActive(i int) bool {
	return in.previous[i]
}

//Copy of the current buffer
func (in *InputSpace) Current() []bool {
	result := make([]bool, len(in.current))
	copy(result, in.current)
	return result
}

//Returns a synapse source reading bit i
func (in *InputSpace) Bit(i int) InputBit {
	return InputBit{space: in, index: i}
}

func (in *InputSpace) reset() {
	utils.FillSliceBool(in.current, false)
	utils.FillSliceBool(in.previous, false)
}

// InputBit is a Source bound to one bit of an InputSpace.
type InputBit struct {
	space *InputSpace
	index int
}

func (b InputBit) Index() int {
	return b.index
}

func (b InputBit) IsActive() bool {
	return b.space.IsActive(b.index)
}

func (b InputBit) WasActive() bool {
	return b.space.WasActive(b.index)
}
