package encoders

import (
	"bytes"
	"math/bits"
)

/*
 SDR is a fixed length sparse binary pattern packed into 64 bit words.
The zero value is an empty pattern of length 0. An SDR handed out by an
encoder is never modified afterwards; all operations return new values.
*/
type SDR struct {
	data         []uint64
	binaryLength int
}

/* Intializers */

//Returns an all-zero SDR of the given length
func NewSDR(length int) SDR {
	s := SDR{}
	s.init(length)
	return s
}

//Builds an SDR from a dense bool slice
func SDRFromBools(values []bool) SDR {
	s := NewSDR(len(values))
	for idx, val := range values {
		if val {
			s.set(idx)
		}
	}
	return s
}

//Builds an SDR of the given length with the specified bits on.
//Out of range indices are ignored.
func SDRFromIndices(length int, indices []int) SDR {
	s := NewSDR(length)
	for _, idx := range indices {
		if idx >= 0 && idx < length {
			s.set(idx)
		}
	}
	return s
}

//Builds an SDR from a string of 0s and 1s
func SDRFromStr(str string) SDR {
	s := NewSDR(len(str))
	for idx, val := range str {
		if val != '0' {
			s.set(idx)
		}
	}
	return s
}

/* helpers */

func (s *SDR) init(size int) {
	s.data = make([]uint64, (size+63)/64)
	s.binaryLength = size
}

func (s *SDR) set(idx int) {
	s.data[idx/64] |= 1 << uint(idx%64)
}

/* exported functions */

//Number of bits in the pattern
func (s SDR) Len() int {
	return s.binaryLength
}

//Value of bit idx, false when out of range
func (s SDR) At(idx int) bool {
	if idx < 0 || idx >= s.binaryLength {
		return false
	}
	return s.data[idx/64]&(1<<uint(idx%64)) != 0
}

//Number of on bits
func (s SDR) OnBits() int {
	count := 0
	for _, w := range s.data {
		count += bits.OnesCount64(w)
	}
	return count
}

//Ascending indices of the on bits
func (s SDR) OnIndices() []int {
	result := make([]int, 0, s.OnBits())
	for i := 0; i < s.binaryLength; i++ {
		if s.At(i) {
			result = append(result, i)
		}
	}
	return result
}

//Number of on bits shared with other
func (s SDR) Overlap(other SDR) int {
	n := len(s.data)
	if len(other.data) < n {
		n = len(other.data)
	}
	count := 0
	for i := 0; i < n; i++ {
		count += bits.OnesCount64(s.data[i] & other.data[i])
	}
	return count
}

func (s SDR) Equals(other SDR) bool {
	if s.binaryLength != other.binaryLength {
		return false
	}

	for idx, val := range s.data {
		if val != other.data[idx] {
			return false
		}
	}

	return true
}

//Returns a freshly allocated dense copy, safe for the caller to modify
func (s SDR) Slice() []bool {
	result := make([]bool, s.binaryLength)
	for i := range result {
		result[i] = s.At(i)
	}
	return result
}

func (s SDR) String() string {
	var buffer bytes.Buffer
	for i := 0; i < s.binaryLength; i++ {
		if s.At(i) {
			buffer.WriteByte('1')
		} else {
			buffer.WriteByte('0')
		}
	}
	return buffer.String()
}
